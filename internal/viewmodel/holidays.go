package viewmodel

import (
	"context"
	"strconv"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

const (
	FilterUpcoming = "Upcoming"
	FilterPast     = "Past"
)

var holidayGrant = user.Grant{
	Create: user.PermissionHolidayManage,
	Update: user.PermissionHolidayManage,
	Delete: user.PermissionHolidayManage,
}

// Holidays lists holidays by date. Upcoming and Past are split at the date
// the screen was opened, so a holiday dated that day is upcoming.
type Holidays struct {
	*viewstate.Controller[holiday.Holiday, holiday.Query]
}

func NewHolidays(gw viewstate.Gateway[holiday.Holiday, holiday.Query], deps Deps) *Holidays {
	cutoff := deps.now().Format(time.DateOnly)
	upcoming := func(h holiday.Holiday) bool {
		return h.Date >= cutoff
	}
	return &Holidays{
		Controller: viewstate.NewController(viewstate.Config[holiday.Holiday, holiday.Query]{
			Resource: "holidays",
			Gateway:  gw,
			IDOf:     holiday.Holiday.Key,
			AutoLoad: deps.AutoLoad,
			Filters: []viewstate.Filter[holiday.Holiday]{
				{Name: viewstate.FilterAll},
				{Name: FilterUpcoming, Match: upcoming},
				{Name: FilterPast, Match: func(h holiday.Holiday) bool { return !upcoming(h) }},
			},
			Search: func(h holiday.Holiday, needle string) bool {
				return viewstate.ContainsFold(needle, h.Name, h.Description)
			},
			Less: func(a, b holiday.Holiday) bool {
				return a.On().Before(b.On())
			},
			Capabilities: deps.capabilities(holidayGrant),
			Messages:     crudMessages("Holiday"),
			Session:      deps.Session,
			Logger:       deps.Logger,
		}),
	}
}

// LoadYear narrows the list to one calendar year.
func (h *Holidays) LoadYear(ctx context.Context, year int) error {
	y := strconv.Itoa(year)
	return h.Load(ctx, holiday.Query{Start: y + "-01-01", End: y + "-12-31"})
}

func (h *Holidays) Add(ctx context.Context, req holiday.SaveRequest) (viewstate.Outcome, error) {
	return h.Create(ctx, &req)
}

func (h *Holidays) Edit(ctx context.Context, id int64, req holiday.SaveRequest) (viewstate.Outcome, error) {
	return h.Update(ctx, id, &req)
}

func (h *Holidays) Remove(ctx context.Context, id int64) (viewstate.Outcome, error) {
	return h.Delete(ctx, id)
}
