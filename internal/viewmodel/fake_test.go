package viewmodel

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

func ptr[V any](v V) *V { return &v }

// roleSession is a signed-in session with a fixed role.
type roleSession struct {
	role user.Role
	done chan struct{}
}

func newRoleSession(role user.Role) *roleSession {
	return &roleSession{role: role, done: make(chan struct{})}
}

func (s *roleSession) IsAuthenticated() bool { return true }
func (s *roleSession) Done() <-chan struct{} { return s.done }
func (s *roleSession) Invalidate(string) {}
func (s *roleSession) Capabilities(g user.Grant) user.Capabilities {
	return user.CapabilitiesFor(s.role, g)
}

// memGateway is an in-memory backend for one resource. save builds the
// stored item for create and update; actions apply a verb to one item.
type memGateway[T any, P any] struct {
	mu      sync.Mutex
	items   []T
	idOf    func(T) *int64
	save    func(id int64, payload any) T
	actions map[string]func(item T, payload any) T
	listErr []error
	nextID  int64
	lists   int
	bulk    []any
}

func newMemGateway[T any, P any](idOf func(T) *int64, items ...T) *memGateway[T, P] {
	return &memGateway[T, P]{items: items, idOf: idOf, nextID: 100}
}

func notFound() error { return apierr.FromStatus(http.StatusNotFound, nil) }

func (g *memGateway[T, P]) index(id int64) int {
	return slices.IndexFunc(g.items, func(item T) bool {
		key := g.idOf(item)
		return key != nil && *key == id
	})
}

func (g *memGateway[T, P]) List(ctx context.Context, _ P) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lists++
	if len(g.listErr) > 0 {
		err := g.listErr[0]
		g.listErr = g.listErr[1:]
		return nil, err
	}
	return slices.Clone(g.items), nil
}

func (g *memGateway[T, P]) Get(_ context.Context, id int64) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var zero T
	i := g.index(id)
	if i < 0 {
		return zero, notFound()
	}
	return g.items[i], nil
}

func (g *memGateway[T, P]) Create(_ context.Context, payload any) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	item := g.save(g.nextID, payload)
	g.nextID++
	g.items = append(g.items, item)
	return item, nil
}

func (g *memGateway[T, P]) Update(_ context.Context, id int64, payload any) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var zero T
	i := g.index(id)
	if i < 0 {
		return zero, notFound()
	}
	g.items[i] = g.save(id, payload)
	return g.items[i], nil
}

func (g *memGateway[T, P]) Delete(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.index(id)
	if i < 0 {
		return notFound()
	}
	g.items = slices.Delete(g.items, i, i+1)
	return nil
}

func (g *memGateway[T, P]) Action(_ context.Context, id int64, verb string, payload any) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var zero T
	i := g.index(id)
	if i < 0 {
		return zero, notFound()
	}
	g.items[i] = g.actions[verb](g.items[i], payload)
	return g.items[i], nil
}

func (g *memGateway[T, P]) BulkAction(_ context.Context, _ string, payload any) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bulk = append(g.bulk, payload)
	return []T{}, nil
}

func (g *memGateway[T, P]) listCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lists
}
