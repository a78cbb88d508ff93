package viewmodel

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

type Dashboard struct {
	*viewstate.Value[dashboard.Stats]
}

func NewDashboard(fetch func(ctx context.Context) (dashboard.Stats, error), deps Deps) *Dashboard {
	return &Dashboard{
		Value: viewstate.NewValue(viewstate.ValueConfig[dashboard.Stats]{
			Resource: "dashboard",
			Fetch:    fetch,
			AutoLoad: deps.AutoLoad,
			Session:  deps.Session,
			Logger:   deps.Logger,
		}),
	}
}

// Bars is the attendance breakdown of the last loaded stats; empty before
// the first load or when there are no employees.
func (d *Dashboard) Bars() []dashboard.Bar {
	stats, ok := d.Current()
	if !ok {
		return []dashboard.Bar{}
	}
	return stats.Bars()
}

// PresentPercent is 0 until stats are loaded.
func (d *Dashboard) PresentPercent() float64 {
	stats, _ := d.Current()
	return stats.PresentPercent()
}
