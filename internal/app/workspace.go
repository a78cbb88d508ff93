package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/gateway"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewmodel"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

type WorkspaceOptions struct {
	Date         string // attendance date, today when empty
	Period       summary.Period
	PageSize     int
	PollInterval time.Duration // polling is off when not positive
	// ManualLoad leaves every screen idle until Load or RefreshAll.
	ManualLoad bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// Workspace holds one controller per screen. Screens are bound to the
// session they were opened in; open a new workspace after signing in again.
type Workspace struct {
	Attendance *viewmodel.Attendance
	Employees  *viewmodel.Employees
	Groups     *viewmodel.Groups
	Holidays   *viewmodel.Holidays
	Leaves     *viewmodel.Leaves
	Summary    *viewmodel.Summary
	Dashboard  *viewmodel.Dashboard

	logger    *slog.Logger
	poll      time.Duration
	scheduler *cron.Scheduler
}

func NewWorkspace(client *gateway.Client, sess viewmodel.Session, opts WorkspaceOptions) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deps := viewmodel.Deps{
		Session:  sess,
		Logger:   logger,
		AutoLoad: !opts.ManualLoad,
		PageSize: opts.PageSize,
		Now:      opts.Now,
	}

	return &Workspace{
		Attendance: viewmodel.NewAttendance(gateway.Attendance(client), opts.Date, deps),
		Employees:  viewmodel.NewEmployees(gateway.Employees(client), deps),
		Groups:     viewmodel.NewGroups(gateway.Groups(client), deps),
		Holidays:   viewmodel.NewHolidays(gateway.Holidays(client), deps),
		Leaves:     viewmodel.NewLeaves(gateway.Leaves(client), deps),
		Summary:    viewmodel.NewSummary(gateway.Summaries(client), opts.Period, deps),
		Dashboard:  viewmodel.NewDashboard(client.DashboardStats, deps),
		logger:     logger.With(slog.String("component", "workspace")),
		poll:       opts.PollInterval,
	}
}

// RefreshAll reloads every screen concurrently with its current params. It
// waits for all of them and returns the first failure; each screen keeps its
// own error state. A reload overtaken by a newer load is not a failure.
func (w *Workspace) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	refresh := func(load func(context.Context) error) {
		g.Go(func() error {
			if err := load(ctx); !errors.Is(err, viewstate.ErrSuperseded) {
				return err
			}
			return nil
		})
	}
	refresh(w.Attendance.Reload)
	refresh(w.Employees.Reload)
	refresh(w.Groups.Reload)
	refresh(w.Holidays.Reload)
	refresh(w.Leaves.Reload)
	refresh(w.Summary.Reload)
	refresh(w.Dashboard.Load)

	err := g.Wait()
	if err != nil {
		w.logger.Warn("Refresh incomplete", "error", err)
	}
	return err
}

// StartPolling refreshes every screen on the poll interval until ctx ends or
// Close is called. It does nothing when polling is disabled.
func (w *Workspace) StartPolling(ctx context.Context) {
	if w.poll <= 0 || w.scheduler != nil {
		return
	}
	w.scheduler = cron.NewScheduler(w.logger)
	w.scheduler.AddJob(cron.Job{
		Name:     "refresh",
		Interval: w.poll,
		Fn:       w.RefreshAll,
	})
	w.scheduler.Start(ctx)
}

func (w *Workspace) Close() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
	w.Attendance.Close()
	w.Employees.Close()
	w.Groups.Close()
	w.Holidays.Close()
	w.Leaves.Close()
	w.Summary.Close()
	w.Dashboard.Close()
}
