package viewstate

import (
	"context"
	"slices"
	"sync"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

type item struct {
	ID     *int64
	Name   string
	Status string
}

func newItem(id int64, name, status string) item {
	return item{ID: &id, Name: name, Status: status}
}

func itemID(i item) *int64 { return i.ID }

// fakeGateway keeps a server-side copy of the collection. listFn, when set,
// replaces List entirely; failures injects an error for the next call of a
// method.
type fakeGateway struct {
	mu       sync.Mutex
	store    []item
	nextID   int64
	listFn   func(ctx context.Context, params string) ([]item, error)
	failures map[string]error
	calls    map[string]int
}

func newFakeGateway(items ...item) *fakeGateway {
	return &fakeGateway{
		store:    items,
		nextID:   100,
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

func (g *fakeGateway) record(method string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[method]++
	if err, ok := g.failures[method]; ok {
		delete(g.failures, method)
		return err
	}
	return nil
}

func (g *fakeGateway) fail(method string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[method] = err
}

func (g *fakeGateway) count(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[method]
}

func (g *fakeGateway) remove(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store = slices.DeleteFunc(g.store, func(i item) bool { return *i.ID == id })
}

func (g *fakeGateway) indexOf(id int64) int {
	return slices.IndexFunc(g.store, func(i item) bool { return *i.ID == id })
}

func (g *fakeGateway) List(ctx context.Context, params string) ([]item, error) {
	if err := g.record("list"); err != nil {
		return nil, err
	}
	if g.listFn != nil {
		return g.listFn(ctx, params)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.store), nil
}

func (g *fakeGateway) Get(_ context.Context, id int64) (item, error) {
	if err := g.record("get"); err != nil {
		return item{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return item{}, apierr.FromStatus(404, nil)
	}
	return g.store[i], nil
}

func (g *fakeGateway) Create(_ context.Context, payload any) (item, error) {
	if err := g.record("create"); err != nil {
		return item{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	created := payload.(item)
	id := g.nextID
	g.nextID++
	created.ID = &id
	g.store = append(g.store, created)
	return created, nil
}

func (g *fakeGateway) Update(_ context.Context, id int64, payload any) (item, error) {
	if err := g.record("update"); err != nil {
		return item{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return item{}, apierr.FromStatus(404, nil)
	}
	updated := payload.(item)
	updated.ID = g.store[i].ID
	g.store[i] = updated
	return updated, nil
}

func (g *fakeGateway) Delete(_ context.Context, id int64) error {
	if err := g.record("delete"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return apierr.FromStatus(404, nil)
	}
	g.store = slices.Delete(g.store, i, i+1)
	return nil
}

func (g *fakeGateway) Action(_ context.Context, id int64, verb string, _ any) (item, error) {
	if err := g.record("action"); err != nil {
		return item{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return item{}, apierr.FromStatus(404, nil)
	}
	switch verb {
	case "approve":
		g.store[i].Status = "APPROVED"
	case "reject":
		g.store[i].Status = "REJECTED"
	}
	return g.store[i], nil
}

func (g *fakeGateway) BulkAction(_ context.Context, _ string, payload any) ([]item, error) {
	if err := g.record("bulk"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var created []item
	for _, name := range payload.([]string) {
		id := g.nextID
		g.nextID++
		it := item{ID: &id, Name: name, Status: "WFO"}
		g.store = append(g.store, it)
		created = append(created, it)
	}
	return created, nil
}

type fakeSession struct {
	mu      sync.Mutex
	authed  bool
	done    chan struct{}
	reasons []string
}

func newFakeSession(authed bool) *fakeSession {
	return &fakeSession{authed: authed, done: make(chan struct{})}
}

func (s *fakeSession) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

func (s *fakeSession) Done() <-chan struct{} { return s.done }

func (s *fakeSession) Invalidate(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reasons = append(s.reasons, reason)
	if s.authed {
		s.authed = false
		close(s.done)
	}
}

func (s *fakeSession) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reasons)
}
