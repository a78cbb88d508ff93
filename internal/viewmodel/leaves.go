package viewmodel

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

// Leave tabs, in tab order.
const (
	TabAll = iota
	TabPending
	TabApproved
	TabRejected
)

var leaveGrant = user.Grant{
	Create:  user.PermissionLeaveApply,
	Approve: user.PermissionLeaveApprove,
}

type Leaves struct {
	*viewstate.Controller[leave.Request, leave.Query]
}

func NewLeaves(gw viewstate.Gateway[leave.Request, leave.Query], deps Deps) *Leaves {
	return &Leaves{
		Controller: viewstate.NewController(viewstate.Config[leave.Request, leave.Query]{
			Resource: "leaves",
			Gateway:  gw,
			IDOf:     leave.Request.Key,
			AutoLoad: deps.AutoLoad,
			Filters: []viewstate.Filter[leave.Request]{
				{Name: viewstate.FilterAll},
				{Name: string(leave.StatusPending), Match: leave.Request.IsPending},
				{Name: string(leave.StatusApproved), Match: hasLeaveStatus(leave.StatusApproved)},
				{Name: string(leave.StatusRejected), Match: hasLeaveStatus(leave.StatusRejected)},
			},
			Search: func(r leave.Request, needle string) bool {
				return viewstate.ContainsFold(needle, r.EmployeeName)
			},
			// newest first
			Less: func(a, b leave.Request) bool {
				return a.StartDate > b.StartDate
			},
			Capabilities: deps.capabilities(leaveGrant),
			Verbs: map[string]viewstate.Need{
				leave.VerbApprove: viewstate.NeedApprove,
				leave.VerbReject:  viewstate.NeedApprove,
			},
			Messages: map[string]string{
				string(viewstate.MutationCreate): "Leave request submitted successfully",
				leave.VerbApprove:                "Leave approved",
				leave.VerbReject:                 "Leave rejected",
			},
			Session: deps.Session,
			Logger:  deps.Logger,
		}),
	}
}

func hasLeaveStatus(s leave.Status) func(leave.Request) bool {
	return func(r leave.Request) bool { return r.Status == s }
}

// ShowEmployee reloads the list for one employee, or everyone when
// employeeID is nil.
func (l *Leaves) ShowEmployee(ctx context.Context, employeeID *int64) error {
	return l.Load(ctx, leave.Query{EmployeeID: employeeID})
}

func (l *Leaves) Apply(ctx context.Context, req leave.ApplyRequest) (viewstate.Outcome, error) {
	return l.Create(ctx, &req)
}

func (l *Leaves) Approve(ctx context.Context, id int64, remarks string) (viewstate.Outcome, error) {
	return l.Action(ctx, id, leave.VerbApprove, &leave.ReviewRequest{Remarks: remarks})
}

func (l *Leaves) Reject(ctx context.Context, id int64, remarks string) (viewstate.Outcome, error) {
	return l.Action(ctx, id, leave.VerbReject, &leave.ReviewRequest{Remarks: remarks})
}

// PendingCount is the number of loaded requests awaiting review.
func (l *Leaves) PendingCount() int {
	return len(l.ViewFor(string(leave.StatusPending)))
}
