package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/smart-attendance-go/internal/app"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/export"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewmodel"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

type viewOptions struct {
	filter string
	search string
	page   int
}

// load fetches the screen and applies the view options to its derived view.
func load[T any, P any](ctx context.Context, c *viewstate.Controller[T, P], o viewOptions) (viewstate.Snapshot[T, P], error) {
	if err := c.Reload(ctx); err != nil {
		return viewstate.Snapshot[T, P]{}, err
	}
	if o.filter != "" {
		c.SetFilter(o.filter)
	}
	if o.search != "" {
		c.SetSearch(o.search)
	}
	if o.page > 1 {
		c.SetPage(o.page)
	}
	return c.Snapshot(), nil
}

func printTable[T any, P any](w io.Writer, snap viewstate.Snapshot[T, P], header []string, row func(T) []string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, item := range snap.View {
		fmt.Fprintln(tw, strings.Join(row(item), "\t"))
	}
	_ = tw.Flush()

	if snap.Notice != "" {
		fmt.Fprintln(w, "!", snap.Notice)
	}
	if snap.Page.TotalPages > 1 {
		fmt.Fprintf(w, "%d-%d of %d (page %d/%d)\n", snap.Page.Start, snap.Page.End, snap.Page.TotalItems, snap.Page.Page, snap.Page.TotalPages)
	} else {
		fmt.Fprintf(w, "%d shown\n", len(snap.View))
	}
}

func printOutcome(o viewstate.Outcome) error {
	if !o.OK {
		return errors.New(o.Message)
	}
	fmt.Println(o.Message)
	return nil
}

func showDashboard(ctx context.Context, d *viewmodel.Dashboard) error {
	if err := d.Load(ctx); err != nil {
		return err
	}
	return printDashboard(d)
}

func printDashboard(d *viewmodel.Dashboard) error {
	stats, _ := d.Current()
	fmt.Printf("Employees: %d  Present: %d (%.1f%%)  Pending leaves: %d  Upcoming holidays: %d\n",
		stats.TotalEmployees, stats.PresentToday, d.PresentPercent(), stats.PendingLeaves, stats.UpcomingHolidays)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range d.Bars() {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%s\n", b.Label, b.Value, b.Percent, strings.Repeat("#", int(b.Percent/5)))
	}
	return tw.Flush()
}

func attendanceRow(r attendance.Record) []string {
	return []string{idText(r.ID), r.EmployeeCode, r.EmployeeName, string(r.Status), r.InTime, r.OutTime, r.Source}
}

var attendanceHeader = []string{"ID", "CODE", "EMPLOYEE", "STATUS", "IN", "OUT", "SOURCE"}

func showAttendance(ctx context.Context, a *viewmodel.Attendance, o viewOptions) error {
	snap, err := load(ctx, a.Controller, o)
	if err != nil {
		return err
	}
	fmt.Println("Attendance", snap.Params.Date)
	printTable(os.Stdout, snap, attendanceHeader, attendanceRow)
	return nil
}

func processChat(ctx context.Context, a *viewmodel.Attendance, path string, o viewOptions) error {
	if path == "" {
		return errors.New("-chat required")
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read chat export: %w", err)
	}
	if _, err := load(ctx, a.Controller, viewOptions{}); err != nil {
		return err
	}
	outcome, err := a.ProcessChat(ctx, string(text), nil)
	if err != nil {
		return err
	}
	if err := printOutcome(outcome); err != nil {
		return err
	}
	return showAttendance(ctx, a, o)
}

func showEmployees(ctx context.Context, e *viewmodel.Employees, o viewOptions) error {
	snap, err := load(ctx, e.Controller, o)
	if err != nil {
		return err
	}
	printTable(os.Stdout, snap, []string{"ID", "CODE", "NAME", "EMAIL", "GROUP", "ACTIVE"}, func(e employee.Employee) []string {
		return []string{idText(e.ID), e.EmployeeCode, e.Name, e.Email, e.GroupName, fmt.Sprint(e.Active())}
	})
	return nil
}

func showGroups(ctx context.Context, g *viewmodel.Groups, o viewOptions) error {
	snap, err := load(ctx, g.Controller, o)
	if err != nil {
		return err
	}
	printTable(os.Stdout, snap, []string{"ID", "NAME", "WHATSAPP GROUP", "EMPLOYEES", "ACTIVE"}, func(g group.Group) []string {
		return []string{idText(g.ID), g.Name, g.WhatsappGroupName, fmt.Sprint(g.EmployeeCount), fmt.Sprint(g.Active())}
	})
	return nil
}

func showHolidays(ctx context.Context, h *viewmodel.Holidays, o viewOptions) error {
	snap, err := load(ctx, h.Controller, o)
	if err != nil {
		return err
	}
	printTable(os.Stdout, snap, []string{"ID", "DATE", "NAME", "OPTIONAL"}, func(h holiday.Holiday) []string {
		return []string{idText(h.ID), h.Date, h.Name, fmt.Sprint(h.IsOptional)}
	})
	return nil
}

func leaveRow(r leave.Request) []string {
	return []string{idText(r.ID), r.EmployeeName, r.LeaveType, r.StartDate, r.EndDate, string(r.Status), r.ApprovedByName}
}

var leaveHeader = []string{"ID", "EMPLOYEE", "TYPE", "FROM", "TO", "STATUS", "REVIEWER"}

func showLeaves(ctx context.Context, l *viewmodel.Leaves, o viewOptions) error {
	snap, err := load(ctx, l.Controller, o)
	if err != nil {
		return err
	}
	printTable(os.Stdout, snap, leaveHeader, leaveRow)
	fmt.Printf("%d pending\n", l.PendingCount())
	return nil
}

func reviewLeave(ctx context.Context, l *viewmodel.Leaves, verb string, id int64, remarks string) error {
	if _, err := load(ctx, l.Controller, viewOptions{}); err != nil {
		return err
	}
	review := l.Approve
	if verb == "reject" {
		review = l.Reject
	}
	outcome, err := review(ctx, id, remarks)
	if err != nil {
		return err
	}
	return printOutcome(outcome)
}

func summaryRow(m summary.Monthly) []string {
	return []string{m.EmployeeCode, m.EmployeeName, fmt.Sprint(m.WFOCount), fmt.Sprint(m.WFHCount), fmt.Sprint(m.LeaveCount),
		fmt.Sprint(m.HolidayCount), fmt.Sprint(m.AbsentCount), fmt.Sprint(m.TotalWorkingDays), fmt.Sprintf("%.2f%%", m.Rate())}
}

var summaryHeader = []string{"CODE", "EMPLOYEE", "WFO", "WFH", "LEAVE", "HOLIDAY", "ABSENT", "DAYS", "RATE"}

func showSummary(ctx context.Context, s *viewmodel.Summary, o viewOptions) error {
	snap, err := load(ctx, s.Controller, o)
	if err != nil {
		return err
	}
	fmt.Println("Summary", snap.Params.String())
	printTable(os.Stdout, snap, summaryHeader, summaryRow)
	return nil
}

func generateSummary(ctx context.Context, s *viewmodel.Summary, o viewOptions) error {
	outcome, err := s.Generate(ctx)
	if err != nil {
		return err
	}
	if err := printOutcome(outcome); err != nil {
		return err
	}
	return showSummary(ctx, s, o)
}

func exportSummary(ctx context.Context, s *viewmodel.Summary, path string) error {
	snap, err := load(ctx, s.Controller, viewOptions{})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteSummary(f, snap.Params, snap.Items); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", len(snap.Items), path)
	return f.Close()
}

// watch keeps every screen open with polling on and prints the dashboard
// each time fresh stats arrive, until ctx ends.
func watch(ctx context.Context, a *app.App, opts app.WorkspaceOptions) error {
	if a.Config.API.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be set to watch")
	}
	ws := a.Workspace(ctx, opts)
	defer ws.Close()

	updates, cancel := ws.Dashboard.Subscribe()
	defer cancel()

	prev := viewstate.StatusIdle
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			settled := snap.Status != prev && (snap.Status == viewstate.StatusLoaded || snap.Status == viewstate.StatusError)
			prev = snap.Status
			if !settled {
				continue
			}
			if snap.Status == viewstate.StatusError {
				fmt.Println("Refresh failed:", snap.ErrorMessage)
				continue
			}
			if snap.Notice != "" {
				fmt.Println(snap.Notice)
			}
			if err := printDashboard(ws.Dashboard); err != nil {
				return err
			}
		}
	}
}
