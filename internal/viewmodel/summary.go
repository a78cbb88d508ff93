package viewmodel

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

var summaryGrant = user.Grant{
	Create: user.PermissionSummaryGenerate,
}

// Summary is the monthly attendance summary for one period.
type Summary struct {
	*viewstate.Controller[summary.Monthly, summary.Period]
}

// NewSummary opens the screen on period, or the current month when period is
// the zero value.
func NewSummary(gw viewstate.Gateway[summary.Monthly, summary.Period], period summary.Period, deps Deps) *Summary {
	if period == (summary.Period{}) {
		period = summary.CurrentPeriod(deps.now())
	}
	return &Summary{
		Controller: viewstate.NewController(viewstate.Config[summary.Monthly, summary.Period]{
			Resource: "summary",
			Gateway:  gw,
			IDOf:     summary.Monthly.Key,
			Params:   period,
			AutoLoad: deps.AutoLoad,
			Filters:  []viewstate.Filter[summary.Monthly]{{Name: viewstate.FilterAll}},
			Search: func(m summary.Monthly, needle string) bool {
				return viewstate.ContainsFold(needle, m.EmployeeName, m.EmployeeCode)
			},
			Less: func(a, b summary.Monthly) bool {
				return lessFold(a.EmployeeName, b.EmployeeName)
			},
			Capabilities: deps.capabilities(summaryGrant),
			Verbs: map[string]viewstate.Need{
				summary.VerbGenerate: viewstate.NeedCreate,
			},
			Messages: map[string]string{
				summary.VerbGenerate: "Summary generated successfully",
			},
			Session: deps.Session,
			Logger:  deps.Logger,
		}),
	}
}

func (s *Summary) SetPeriod(ctx context.Context, p summary.Period) error {
	return s.Load(ctx, p)
}

// Generate asks the backend to recompute the period on screen.
func (s *Summary) Generate(ctx context.Context) (viewstate.Outcome, error) {
	return s.BulkAction(ctx, summary.VerbGenerate, s.Snapshot().Params)
}
