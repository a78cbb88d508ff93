package viewmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

var march1 = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func adminDeps() Deps {
	return Deps{
		Session: newRoleSession(user.RoleAdmin),
		Logger:  logging.Discard(),
		Now:     func() time.Time { return march1 },
	}
}

func record(id int64, name string, status attendance.Status) attendance.Record {
	return attendance.Record{ID: &id, EmployeeName: name, Date: "2024-03-01", Status: status}
}

func TestAttendance_FilterByStatus(t *testing.T) {
	gw := newMemGateway[attendance.Record, attendance.Query](attendance.Record.Key,
		record(1, "Budi", attendance.StatusWFO),
		record(2, "Asha", attendance.StatusWFH),
		record(3, "Citra", attendance.StatusAbsent),
	)
	screen := NewAttendance(gw, "2024-03-01", adminDeps())
	defer screen.Close()

	require.NoError(t, screen.LoadDate(context.Background(), "2024-03-01"))

	assert.Len(t, screen.ViewFor(FilterWFO), 1)
	assert.Len(t, screen.ViewFor(viewstate.FilterAll), 3)
	assert.Empty(t, screen.ViewFor(FilterLeave))

	screen.SetFilter(FilterAbsent)
	snap := screen.Snapshot()
	require.Len(t, snap.View, 1)
	assert.Equal(t, "Citra", snap.View[0].EmployeeName)

	screen.SetFilter(viewstate.FilterAll)
	names := []string{}
	for _, r := range screen.Snapshot().View {
		names = append(names, r.EmployeeName)
	}
	assert.Equal(t, []string{"Asha", "Budi", "Citra"}, names)

	counts := screen.Counts()
	assert.Equal(t, 1, counts[attendance.StatusWFO])
	assert.Equal(t, 0, counts[attendance.StatusLeave])
}

// gatedAttendance holds each List call until its date is released.
type gatedAttendance struct {
	*memGateway[attendance.Record, attendance.Query]
	started chan string
	release map[string]chan struct{}
	byDate  map[string][]attendance.Record
}

func (g *gatedAttendance) List(_ context.Context, q attendance.Query) ([]attendance.Record, error) {
	g.started <- q.Date
	<-g.release[q.Date]
	return g.byDate[q.Date], nil
}

func TestAttendance_LastDateWins(t *testing.T) {
	gw := &gatedAttendance{
		memGateway: newMemGateway[attendance.Record, attendance.Query](attendance.Record.Key),
		started:    make(chan string, 2),
		release: map[string]chan struct{}{
			"2024-03-01": make(chan struct{}),
			"2024-03-02": make(chan struct{}),
		},
		byDate: map[string][]attendance.Record{
			"2024-03-01": {record(1, "Stale", attendance.StatusWFO)},
			"2024-03-02": {record(2, "Fresh", attendance.StatusWFH)},
		},
	}
	screen := NewAttendance(gw, "2024-03-01", adminDeps())
	defer screen.Close()

	firstDone := make(chan error, 1)
	go func() { firstDone <- screen.LoadDate(context.Background(), "2024-03-01") }()
	require.Equal(t, "2024-03-01", <-gw.started)

	secondDone := make(chan error, 1)
	go func() { secondDone <- screen.LoadDate(context.Background(), "2024-03-02") }()
	require.Equal(t, "2024-03-02", <-gw.started)

	close(gw.release["2024-03-02"])
	require.NoError(t, <-secondDone)
	close(gw.release["2024-03-01"])
	assert.ErrorIs(t, <-firstDone, viewstate.ErrSuperseded)

	snap := screen.Snapshot()
	assert.Equal(t, viewstate.StatusLoaded, snap.Status)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Fresh", snap.Items[0].EmployeeName)
	assert.Equal(t, "2024-03-02", snap.LastFetchParams.Date)
}

func TestAttendance_ProcessChat(t *testing.T) {
	gw := newMemGateway[attendance.Record, attendance.Query](attendance.Record.Key)
	screen := NewAttendance(gw, "2024-03-01", adminDeps())
	defer screen.Close()

	out, err := screen.ProcessChat(context.Background(), "[09:01] Asha: WFO", ptr(int64(5)))
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, "Attendance processed successfully", out.Message)

	require.Len(t, gw.bulk, 1)
	req, ok := gw.bulk[0].(*attendance.ProcessChatRequest)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", req.Date)
	assert.Equal(t, "5", req.GroupID)

	userScreen := NewAttendance(gw, "2024-03-01", Deps{Session: newRoleSession(user.RoleUser), Logger: logging.Discard()})
	defer userScreen.Close()
	_, err = userScreen.ProcessChat(context.Background(), "text", nil)
	assert.ErrorIs(t, err, viewstate.ErrCapabilityDenied)
	assert.Len(t, gw.bulk, 1)
}

func TestEmployees_CreateReconciles(t *testing.T) {
	gw := newMemGateway[employee.Employee, employee.Query](employee.Employee.Key)
	gw.nextID = 42
	gw.save = func(id int64, payload any) employee.Employee {
		req := payload.(*employee.SaveRequest)
		return employee.Employee{ID: &id, Name: req.Name, Email: req.Email}
	}
	screen := NewEmployees(gw, adminDeps())
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))

	out, err := screen.Add(context.Background(), employee.SaveRequest{Name: "Asha", Email: "a@x.com"})
	require.NoError(t, err)
	require.NotNil(t, out.ResultID)
	assert.Equal(t, int64(42), *out.ResultID)
	assert.Equal(t, "Employee created successfully", out.Message)

	snap := screen.Snapshot()
	assert.False(t, snap.IsSubmitting)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(42), *snap.Items[0].ID)
	assert.Equal(t, "Asha", snap.Items[0].Name)
	assert.Equal(t, 2, gw.listCount())

	first, ok := screen.ConsumeOutcome()
	require.True(t, ok)
	assert.True(t, first.OK)
	_, ok = screen.ConsumeOutcome()
	assert.False(t, ok)
}

func TestEmployees_Paging(t *testing.T) {
	items := make([]employee.Employee, 0, 30)
	for i := int64(1); i <= 30; i++ {
		items = append(items, employee.Employee{ID: ptr(i), Name: "Employee", Email: "e@x.com"})
	}
	gw := newMemGateway[employee.Employee, employee.Query](employee.Employee.Key, items...)
	screen := NewEmployees(gw, adminDeps())
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))

	snap := screen.Snapshot()
	assert.Len(t, snap.View, DefaultPageSize)
	assert.Equal(t, 3, snap.Page.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, screen.VisiblePages())

	require.True(t, screen.SetPage(3))
	assert.Len(t, screen.Snapshot().View, 6)
	assert.False(t, screen.SetPage(4))
}

func TestEmployees_ConnectivityOnFirstMount(t *testing.T) {
	gw := newMemGateway[employee.Employee, employee.Query](employee.Employee.Key,
		employee.Employee{ID: ptr(int64(1)), Name: "Asha"},
	)
	gw.listErr = []error{apierr.Connectivity(errors.New("dial tcp: connection refused"))}
	screen := NewEmployees(gw, adminDeps())
	defer screen.Close()

	err := screen.Reload(context.Background())
	assert.ErrorIs(t, err, apierr.ErrConnectivity)
	snap := screen.Snapshot()
	assert.Equal(t, viewstate.StatusError, snap.Status)
	assert.Empty(t, snap.Items)
	assert.Equal(t, apierr.KindConnectivity, snap.ErrorKind)
	assert.NotEmpty(t, snap.ErrorMessage)

	require.NoError(t, screen.Reload(context.Background()))
	snap = screen.Snapshot()
	assert.Equal(t, viewstate.StatusLoaded, snap.Status)
	assert.Empty(t, snap.ErrorMessage)
	assert.Len(t, snap.Items, 1)
}

func TestHolidays_UpcomingAndPast(t *testing.T) {
	day := func(id int64, name, date string) holiday.Holiday {
		return holiday.Holiday{ID: &id, Name: name, Date: date}
	}
	gw := newMemGateway[holiday.Holiday, holiday.Query](holiday.Holiday.Key,
		day(1, "Christmas", "2024-12-25"),
		day(2, "New Year", "2024-01-01"),
		day(3, "Today", "2024-03-01"),
	)
	screen := NewHolidays(gw, adminDeps())
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))

	all := screen.Snapshot().View
	require.Len(t, all, 3)
	assert.Equal(t, "New Year", all[0].Name)
	assert.Equal(t, "Christmas", all[2].Name)

	upcoming := screen.ViewFor(FilterUpcoming)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Today", upcoming[0].Name)
	assert.Len(t, screen.ViewFor(FilterPast), 1)
}

func TestHolidays_SplitHoldsAcrossMidnight(t *testing.T) {
	id := int64(1)
	gw := newMemGateway[holiday.Holiday, holiday.Query](holiday.Holiday.Key,
		holiday.Holiday{ID: &id, Name: "Today", Date: "2024-03-01"},
	)
	clock := march1
	deps := adminDeps()
	deps.Now = func() time.Time { return clock }

	screen := NewHolidays(gw, deps)
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))
	require.Len(t, screen.ViewFor(FilterUpcoming), 1)

	clock = clock.Add(24 * time.Hour)
	assert.Len(t, screen.ViewFor(FilterUpcoming), 1)
	assert.Empty(t, screen.ViewFor(FilterPast))
}

func leaveRequest(id int64, name, start string, status leave.Status) leave.Request {
	return leave.Request{ID: &id, EmployeeName: name, StartDate: start, EndDate: start, Status: status}
}

func newLeaveGateway() *memGateway[leave.Request, leave.Query] {
	gw := newMemGateway[leave.Request, leave.Query](leave.Request.Key,
		leaveRequest(7, "Asha", "2024-03-04", leave.StatusPending),
		leaveRequest(8, "Budi", "2024-03-10", leave.StatusPending),
		leaveRequest(9, "Citra", "2024-02-01", leave.StatusRejected),
	)
	review := func(status leave.Status) func(leave.Request, any) leave.Request {
		return func(r leave.Request, payload any) leave.Request {
			r.Status = status
			r.AdminRemarks = payload.(*leave.ReviewRequest).Remarks
			return r
		}
	}
	gw.actions = map[string]func(leave.Request, any) leave.Request{
		leave.VerbApprove: review(leave.StatusApproved),
		leave.VerbReject:  review(leave.StatusRejected),
	}
	return gw
}

func TestLeaves_ApproveMovesTab(t *testing.T) {
	gw := newLeaveGateway()
	screen := NewLeaves(gw, adminDeps())
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))
	assert.Equal(t, 2, screen.PendingCount())

	out, err := screen.Approve(context.Background(), 7, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, "Leave approved", out.Message)

	ids := func(items []leave.Request) []int64 {
		out := []int64{}
		for _, r := range items {
			out = append(out, *r.ID)
		}
		return out
	}
	assert.NotContains(t, ids(screen.ViewFor(string(leave.StatusPending))), int64(7))
	assert.Contains(t, ids(screen.ViewFor(string(leave.StatusApproved))), int64(7))

	screen.SetTab(TabApproved)
	snap := screen.Snapshot()
	require.Len(t, snap.View, 1)
	assert.Equal(t, "enjoy", snap.View[0].AdminRemarks)

	screen.SetTab(TabAll)
	assert.Equal(t, []int64{8, 7, 9}, ids(screen.Snapshot().View))
}

func TestLeaves_UserCannotReview(t *testing.T) {
	gw := newLeaveGateway()
	screen := NewLeaves(gw, Deps{Session: newRoleSession(user.RoleUser), Logger: logging.Discard()})
	defer screen.Close()
	require.NoError(t, screen.Reload(context.Background()))

	caps := screen.Capabilities()
	assert.True(t, caps.CanCreate)
	assert.False(t, caps.CanApprove)

	_, err := screen.Reject(context.Background(), 7, "")
	assert.ErrorIs(t, err, viewstate.ErrCapabilityDenied)
	item, err := gw.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, item.Status)
}

func TestSummary_GenerateCurrentPeriod(t *testing.T) {
	gw := newMemGateway[summary.Monthly, summary.Period](summary.Monthly.Key,
		summary.Monthly{ID: ptr(int64(2)), EmployeeName: "budi"},
		summary.Monthly{ID: ptr(int64(1)), EmployeeName: "Asha"},
	)
	screen := NewSummary(gw, summary.Period{}, adminDeps())
	defer screen.Close()
	assert.Equal(t, summary.Period{Month: 3, Year: 2024}, screen.Snapshot().Params)

	require.NoError(t, screen.SetPeriod(context.Background(), summary.Period{Month: 2, Year: 2024}))
	view := screen.Snapshot().View
	require.Len(t, view, 2)
	assert.Equal(t, "Asha", view[0].EmployeeName)

	out, err := screen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Summary generated successfully", out.Message)
	require.Len(t, gw.bulk, 1)
	assert.Equal(t, summary.Period{Month: 2, Year: 2024}, gw.bulk[0])
}

func TestDashboard_ZeroEmployees(t *testing.T) {
	stats := dashboard.Stats{}
	screen := NewDashboard(func(context.Context) (dashboard.Stats, error) { return stats, nil }, adminDeps())
	defer screen.Close()

	assert.Empty(t, screen.Bars())
	assert.Zero(t, screen.PresentPercent())

	require.NoError(t, screen.Load(context.Background()))
	assert.Empty(t, screen.Bars())
	assert.Zero(t, screen.PresentPercent())

	stats = dashboard.Stats{TotalEmployees: 4, PresentToday: 3, WFOToday: 2, WFHToday: 1, AbsentToday: 1}
	require.NoError(t, screen.Load(context.Background()))
	bars := screen.Bars()
	require.Len(t, bars, 4)
	assert.InDelta(t, 50.0, bars[0].Percent, 0.001)
	assert.InDelta(t, 75.0, screen.PresentPercent(), 0.001)
}
