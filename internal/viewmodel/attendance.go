package viewmodel

import (
	"context"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

const (
	FilterWFO     = "WFO"
	FilterWFH     = "WFH"
	FilterLeave   = "Leave"
	FilterAbsent  = "Absent"
	FilterHoliday = "Holiday"
)

var attendanceGrant = user.Grant{
	Create: user.PermissionAttendanceProcess,
	Update: user.PermissionAttendanceEdit,
}

// Attendance is the daily attendance screen.
type Attendance struct {
	*viewstate.Controller[attendance.Record, attendance.Query]
	deps Deps
}

// NewAttendance opens the screen on date (YYYY-MM-DD); an empty date means
// today.
func NewAttendance(gw viewstate.Gateway[attendance.Record, attendance.Query], date string, deps Deps) *Attendance {
	if date == "" {
		date = deps.now().Format(time.DateOnly)
	}
	return &Attendance{
		deps: deps,
		Controller: viewstate.NewController(viewstate.Config[attendance.Record, attendance.Query]{
			Resource: "attendance",
			Gateway:  gw,
			IDOf:     attendance.Record.Key,
			Params:   attendance.ForDate(date),
			AutoLoad: deps.AutoLoad,
			Filters: []viewstate.Filter[attendance.Record]{
				{Name: viewstate.FilterAll},
				{Name: FilterWFO, Match: hasStatus(attendance.StatusWFO)},
				{Name: FilterWFH, Match: hasStatus(attendance.StatusWFH)},
				{Name: FilterLeave, Match: hasStatus(attendance.StatusLeave)},
				{Name: FilterAbsent, Match: hasStatus(attendance.StatusAbsent)},
				{Name: FilterHoliday, Match: hasStatus(attendance.StatusHoliday)},
			},
			Search: func(r attendance.Record, needle string) bool {
				return viewstate.ContainsFold(needle, r.EmployeeName, r.EmployeeCode)
			},
			Less: func(a, b attendance.Record) bool {
				return lessFold(a.EmployeeName, b.EmployeeName)
			},
			Capabilities: deps.capabilities(attendanceGrant),
			Verbs: map[string]viewstate.Need{
				attendance.VerbProcessChat: viewstate.NeedCreate,
			},
			Messages: map[string]string{
				attendance.VerbProcessChat:       "Attendance processed successfully",
				string(viewstate.MutationUpdate): "Attendance updated successfully",
			},
			Session: deps.Session,
			Logger:  deps.Logger,
		}),
	}
}

func hasStatus(s attendance.Status) func(attendance.Record) bool {
	return func(r attendance.Record) bool { return r.Status == s }
}

func (a *Attendance) LoadDate(ctx context.Context, date string) error {
	return a.Load(ctx, attendance.ForDate(date))
}

func (a *Attendance) LoadRange(ctx context.Context, start, end string) error {
	return a.Load(ctx, attendance.Query{Start: start, End: end})
}

func (a *Attendance) LoadEmployee(ctx context.Context, employeeID int64) error {
	return a.Load(ctx, attendance.Query{EmployeeID: &employeeID})
}

// ProcessChat submits a pasted chat export for the date on screen, or today
// when the screen shows a range.
func (a *Attendance) ProcessChat(ctx context.Context, chatText string, groupID *int64) (viewstate.Outcome, error) {
	date := a.Snapshot().Params.Date
	if date == "" {
		date = a.deps.now().Format(time.DateOnly)
	}
	req := attendance.NewProcessChatRequest(chatText, date, groupID)
	return a.BulkAction(ctx, attendance.VerbProcessChat, &req)
}

func (a *Attendance) Correct(ctx context.Context, id int64, req attendance.UpdateRequest) (viewstate.Outcome, error) {
	return a.Update(ctx, id, &req)
}

// Counts tallies the loaded records per status.
func (a *Attendance) Counts() map[attendance.Status]int {
	counts := make(map[attendance.Status]int, len(attendance.Statuses))
	for _, r := range a.Snapshot().Items {
		counts[r.Status]++
	}
	return counts
}
