package viewstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

var fullAccess = user.Capabilities{CanCreate: true, CanUpdate: true, CanDelete: true, CanApprove: true}

func statusFilters() []Filter[item] {
	is := func(status string) func(item) bool {
		return func(i item) bool { return i.Status == status }
	}
	return []Filter[item]{
		{Name: FilterAll},
		{Name: "WFO", Match: is("WFO")},
		{Name: "WFH", Match: is("WFH")},
		{Name: "ABSENT", Match: is("ABSENT")},
	}
}

func newTestController(t *testing.T, gw *fakeGateway, opts ...func(*Config[item, string])) *Controller[item, string] {
	t.Helper()
	cfg := Config[item, string]{
		Resource:     "test",
		Gateway:      gw,
		IDOf:         itemID,
		Filters:      statusFilters(),
		Search:       func(i item, needle string) bool { return ContainsFold(needle, i.Name) },
		Less:         func(a, b item) bool { return a.Name < b.Name },
		Capabilities: fullAccess,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := NewController(cfg)
	t.Cleanup(c.Close)
	return c
}

func assertStatusInvariant(t *testing.T, s Snapshot[item, string]) {
	t.Helper()
	assert.Equal(t, s.Status == StatusError, s.ErrorMessage != "", "status %s with error message %q", s.Status, s.ErrorMessage)
}

func ids(items []item) []int64 {
	out := make([]int64, 0, len(items))
	for _, i := range items {
		out = append(out, *i.ID)
	}
	return out
}

func TestController_LoadFiltersByStatus(t *testing.T) {
	gw := newFakeGateway(
		newItem(1, "Asha", "WFO"),
		newItem(2, "Budi", "WFH"),
		newItem(3, "Citra", "ABSENT"),
	)
	c := newTestController(t, gw)
	assert.Equal(t, StatusIdle, c.Snapshot().Status)

	require.NoError(t, c.Load(context.Background(), "2024-03-01"))

	s := c.Snapshot()
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Equal(t, "2024-03-01", s.LastFetchParams)
	assert.Len(t, s.View, 3)
	assertStatusInvariant(t, s)

	c.SetFilter("WFO")
	s = c.Snapshot()
	require.Len(t, s.View, 1)
	assert.Equal(t, "Asha", s.View[0].Name)
	assert.Equal(t, 1, s.Tab)

	c.SetFilter(FilterAll)
	assert.Len(t, c.Snapshot().View, 3)
	assert.Equal(t, 1, gw.count("list"))
}

func TestController_EmptyListIsLoaded(t *testing.T) {
	c := newTestController(t, newFakeGateway())

	require.NoError(t, c.Load(context.Background(), ""))

	s := c.Snapshot()
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.ErrorMessage)
}

func TestController_LastLoadWins(t *testing.T) {
	tests := []struct {
		name        string
		firstToLand string
	}{
		{name: "older request resolves last", firstToLand: "2024-03-02"},
		{name: "older request resolves first", firstToLand: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := map[string]chan struct{}{
				"2024-03-01": make(chan struct{}),
				"2024-03-02": make(chan struct{}),
			}
			started := make(chan string, 2)
			gw := newFakeGateway()
			gw.listFn = func(_ context.Context, date string) ([]item, error) {
				started <- date
				<-release[date]
				return []item{newItem(1, "result "+date, "WFO")}, nil
			}
			c := newTestController(t, gw)

			errs := map[string]chan error{
				"2024-03-01": make(chan error, 1),
				"2024-03-02": make(chan error, 1),
			}
			go func() { errs["2024-03-01"] <- c.Load(context.Background(), "2024-03-01") }()
			require.Equal(t, "2024-03-01", <-started)
			go func() { errs["2024-03-02"] <- c.Load(context.Background(), "2024-03-02") }()
			require.Equal(t, "2024-03-02", <-started)

			assert.Equal(t, StatusLoading, c.Snapshot().Status)

			second := "2024-03-01"
			if tt.firstToLand == second {
				second = "2024-03-02"
			}
			close(release[tt.firstToLand])
			firstErr := <-errs[tt.firstToLand]
			close(release[second])
			secondErr := <-errs[second]

			if tt.firstToLand == "2024-03-02" {
				assert.NoError(t, firstErr)
				assert.ErrorIs(t, secondErr, ErrSuperseded)
			} else {
				assert.ErrorIs(t, firstErr, ErrSuperseded)
				assert.NoError(t, secondErr)
			}

			s := c.Snapshot()
			assert.Equal(t, StatusLoaded, s.Status)
			require.Len(t, s.Items, 1)
			assert.Equal(t, "result 2024-03-02", s.Items[0].Name)
			assert.Equal(t, "2024-03-02", s.LastFetchParams)
		})
	}
}

func TestController_ItemsUntouchedWhileLoading(t *testing.T) {
	gw := newFakeGateway(newItem(1, "Asha", "WFO"))
	c := newTestController(t, gw)
	require.NoError(t, c.Load(context.Background(), "a"))

	release := make(chan struct{})
	started := make(chan struct{})
	gw.listFn = func(context.Context, string) ([]item, error) {
		close(started)
		<-release
		return []item{newItem(2, "Budi", "WFH")}, nil
	}

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), "b") }()
	<-started

	s := c.Snapshot()
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, []int64{1}, ids(s.Items))
	assert.Equal(t, "a", s.LastFetchParams)
	assert.Equal(t, "b", s.Params)
	assertStatusInvariant(t, s)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []int64{2}, ids(c.Snapshot().Items))
}

func TestController_InitialConnectivityFailureThenRecovery(t *testing.T) {
	gw := newFakeGateway(newItem(1, "Asha", "WFO"))
	gw.fail("list", apierr.Connectivity(errors.New("dial tcp: connection refused")))
	c := newTestController(t, gw)

	err := c.Load(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrConnectivity)

	s := c.Snapshot()
	assert.Equal(t, StatusError, s.Status)
	assert.Empty(t, s.Items)
	assert.Equal(t, apierr.MessageConnectivity, s.ErrorMessage)
	assert.Equal(t, apierr.KindConnectivity, s.ErrorKind)
	assertStatusInvariant(t, s)

	require.NoError(t, c.Load(context.Background(), ""))
	s = c.Snapshot()
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Empty(t, s.ErrorMessage)
	assert.Len(t, s.Items, 1)
}

func TestController_TransientFailureKeepsItems(t *testing.T) {
	for _, failure := range []error{
		apierr.Connectivity(errors.New("timeout")),
		apierr.FromStatus(503, nil),
	} {
		gw := newFakeGateway(newItem(1, "Asha", "WFO"))
		c := newTestController(t, gw)
		require.NoError(t, c.Load(context.Background(), ""))

		gw.fail("list", failure)
		require.Error(t, c.Reload(context.Background()))

		s := c.Snapshot()
		assert.Equal(t, StatusLoaded, s.Status)
		assert.Equal(t, []int64{1}, ids(s.Items))
		assert.NotEmpty(t, s.Notice)
		assertStatusInvariant(t, s)

		require.NoError(t, c.Reload(context.Background()))
		assert.Empty(t, c.Snapshot().Notice)
	}
}

func TestController_ValidationFailureAfterLoad(t *testing.T) {
	gw := newFakeGateway(newItem(1, "Asha", "WFO"))
	c := newTestController(t, gw)
	require.NoError(t, c.Load(context.Background(), ""))

	gw.fail("list", apierr.FromStatus(400, []byte(`{"message":"Invalid date"}`)))
	require.Error(t, c.Load(context.Background(), "nope"))

	s := c.Snapshot()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, "Invalid date", s.ErrorMessage)
	assert.Equal(t, []int64{1}, ids(s.Items))
}

func TestController_UnauthorizedInvalidatesSession(t *testing.T) {
	gw := newFakeGateway()
	gw.fail("list", apierr.FromStatus(401, nil))
	sess := newFakeSession(true)
	c := newTestController(t, gw, func(cfg *Config[item, string]) { cfg.Session = sess })

	err := c.Load(context.Background(), "")
	assert.ErrorIs(t, err, apierr.ErrUnauthorized)

	s := c.Snapshot()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, apierr.MessageUnauthorized, s.ErrorMessage)
	assert.Equal(t, 1, sess.invalidations())
	assert.Equal(t, 1, gw.count("list"))
}

func TestController_UnauthenticatedSessionSkipsNetwork(t *testing.T) {
	gw := newFakeGateway(newItem(1, "Asha", "WFO"))
	c := newTestController(t, gw, func(cfg *Config[item, string]) { cfg.Session = newFakeSession(false) })

	err := c.Load(context.Background(), "")
	assert.ErrorIs(t, err, apierr.ErrUnauthorized)
	assert.Equal(t, 0, gw.count("list"))
	assert.Equal(t, StatusError, c.Snapshot().Status)
}

func TestController_SessionEndCancelsLoad(t *testing.T) {
	started := make(chan struct{})
	gw := newFakeGateway()
	gw.listFn = func(ctx context.Context, _ string) ([]item, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	sess := newFakeSession(true)
	c := newTestController(t, gw, func(cfg *Config[item, string]) { cfg.Session = sess })

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), "") }()
	<-started

	sess.Invalidate("signed out")

	assert.ErrorIs(t, <-done, ErrSuperseded)
	s := c.Snapshot()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, apierr.KindUnauthorized, s.ErrorKind)
}

func TestController_CanceledLoadRestoresStatus(t *testing.T) {
	gw := newFakeGateway()
	gw.listFn = func(ctx context.Context, _ string) ([]item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	c := newTestController(t, gw)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Load(ctx, "")
	assert.ErrorIs(t, err, apierr.ErrCanceled)

	s := c.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.ErrorMessage)
}

func TestController_AutoLoad(t *testing.T) {
	release := make(chan struct{})
	gw := newFakeGateway(newItem(1, "Asha", "WFO"))
	gw.listFn = func(_ context.Context, params string) ([]item, error) {
		<-release
		return []item{newItem(1, "Asha "+params, "WFO")}, nil
	}
	c := newTestController(t, gw, func(cfg *Config[item, string]) {
		cfg.AutoLoad = true
		cfg.Params = "today"
	})

	assert.Equal(t, StatusLoading, c.Snapshot().Status)
	close(release)

	assert.Eventually(t, func() bool {
		return c.Snapshot().Status == StatusLoaded
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Asha today", c.Snapshot().Items[0].Name)
}

func TestController_CloseDropsLateResults(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gw := newFakeGateway()
	gw.listFn = func(context.Context, string) ([]item, error) {
		close(started)
		<-release
		return []item{newItem(1, "late", "WFO")}, nil
	}
	c := newTestController(t, gw)
	updates, _ := c.Subscribe()

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), "") }()
	<-started

	c.Close()
	close(release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, c.Snapshot().Items)
	for range updates {
	}
	assert.ErrorIs(t, c.Load(context.Background(), ""), ErrClosed)
}

func TestController_DuplicateIDsCollapse(t *testing.T) {
	gw := newFakeGateway()
	gw.listFn = func(context.Context, string) ([]item, error) {
		return []item{
			newItem(1, "Asha", "WFO"),
			newItem(2, "Budi", "WFH"),
			newItem(1, "Asha Updated", "WFH"),
		}, nil
	}
	c := newTestController(t, gw)
	require.NoError(t, c.Load(context.Background(), ""))

	s := c.Snapshot()
	assert.Equal(t, []int64{1, 2}, ids(s.Items))
	assert.Equal(t, "Asha Updated", s.Items[0].Name)
}

func TestController_ViewParameters(t *testing.T) {
	var seed []item
	for i := 1; i <= 30; i++ {
		seed = append(seed, newItem(int64(i), fmt.Sprintf("Employee %02d", i), "WFO"))
	}
	gw := newFakeGateway(seed...)
	c := newTestController(t, gw, func(cfg *Config[item, string]) { cfg.PageSize = 12 })
	require.NoError(t, c.Load(context.Background(), ""))

	s := c.Snapshot()
	assert.Equal(t, 3, s.Page.TotalPages)
	assert.Len(t, s.View, 12)

	assert.True(t, c.SetPage(3))
	s = c.Snapshot()
	assert.Equal(t, 25, s.Page.Start)
	assert.Equal(t, 30, s.Page.End)
	assert.Len(t, s.View, 6)

	assert.False(t, c.SetPage(4))
	assert.False(t, c.SetPage(0))
	assert.Equal(t, 3, c.Snapshot().Page.Page)

	c.SetSearch("employee 1")
	s = c.Snapshot()
	assert.Equal(t, 1, s.Page.Page)
	assert.Equal(t, 10, s.Page.TotalItems) // 10..19

	c.SetFilter("Holiday")
	s = c.Snapshot()
	assert.Empty(t, s.View)
	assert.Equal(t, -1, s.Tab)
	assert.Equal(t, StatusLoaded, s.Status)

	c.SetTab(0)
	assert.Equal(t, FilterAll, c.Snapshot().Filter)

	c.SetPageSize(0)
	s = c.Snapshot()
	assert.Len(t, s.View, 10)
	assert.Equal(t, 1, s.Page.TotalPages)

	assert.Equal(t, 1, gw.count("list"))
}

func TestController_ViewForIsIndependentOfActiveFilter(t *testing.T) {
	gw := newFakeGateway(
		newItem(1, "Asha", "WFO"),
		newItem(2, "Budi", "WFH"),
		newItem(3, "Bima", "WFH"),
	)
	c := newTestController(t, gw)
	require.NoError(t, c.Load(context.Background(), ""))

	c.SetFilter("WFO")
	c.SetSearch("bu")

	assert.Equal(t, []int64{2}, ids(c.ViewFor("WFH")))
	assert.Empty(t, c.ViewFor("missing"))
	assert.Empty(t, c.Snapshot().View)
}

func TestController_Fetch(t *testing.T) {
	gw := newFakeGateway(newItem(1, "Asha", "WFO"), newItem(2, "Budi", "WFH"))
	c := newTestController(t, gw)
	require.NoError(t, c.Load(context.Background(), ""))

	gw.mu.Lock()
	gw.store[0].Name = "Asha Putri"
	gw.mu.Unlock()

	got, err := c.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Asha Putri", got.Name)
	assert.Equal(t, "Asha Putri", c.Snapshot().Items[0].Name)

	gw.remove(2)
	_, err = c.Fetch(context.Background(), 2)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
	assert.Equal(t, []int64{1}, ids(c.Snapshot().Items))
	assert.Equal(t, 2, gw.count("list"))
}

func TestController_Subscribe(t *testing.T) {
	c := newTestController(t, newFakeGateway(newItem(1, "Asha", "WFO")))
	updates, unsubscribe := c.Subscribe()
	defer unsubscribe()

	first := <-updates
	assert.Equal(t, StatusIdle, first.Status)

	require.NoError(t, c.Load(context.Background(), ""))

	deadline := time.After(time.Second)
	for {
		select {
		case s := <-updates:
			if s.Status == StatusLoaded {
				assert.Len(t, s.Items, 1)
				return
			}
		case <-deadline:
			t.Fatal("no loaded snapshot received")
		}
	}
}

func TestValue(t *testing.T) {
	calls := 0
	v := NewValue(ValueConfig[int]{
		Resource: "stats",
		Fetch: func(context.Context) (int, error) {
			calls++
			if calls == 2 {
				return 0, apierr.FromStatus(500, nil)
			}
			return 7 * calls, nil
		},
	})
	defer v.Close()

	_, ok := v.Current()
	assert.False(t, ok)

	require.NoError(t, v.Load(context.Background()))
	got, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, 7, got)

	require.Error(t, v.Load(context.Background()))
	got, _ = v.Current()
	assert.Equal(t, 7, got)
	assert.True(t, strings.HasPrefix(v.Snapshot().Notice, "Server error"))
}
