// Package memory keeps the stub backend's data in process memory.
package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

// DB is the set of tables shared by the repositories.
type DB struct {
	users       *table[user.User]
	credentials sync.Map // credential -> user id
	employees   *table[employee.Employee]
	groups      *table[group.Group]
	holidays    *table[holiday.Holiday]
	attendance  *table[attendance.Record]
	leaves      *table[leave.Request]
	summaries   *table[summary.Monthly]
}

func NewDB() *DB {
	return &DB{
		users: newTable(func(u user.User, id int64) user.User {
			u.ID = id
			return u
		}),
		employees: newTable(func(e employee.Employee, id int64) employee.Employee {
			e.ID = &id
			return e
		}),
		groups: newTable(func(g group.Group, id int64) group.Group {
			g.ID = &id
			return g
		}),
		holidays: newTable(func(h holiday.Holiday, id int64) holiday.Holiday {
			h.ID = &id
			return h
		}),
		attendance: newTable(func(r attendance.Record, id int64) attendance.Record {
			r.ID = &id
			return r
		}),
		leaves: newTable(func(r leave.Request, id int64) leave.Request {
			r.ID = &id
			return r
		}),
		summaries: newTable(func(m summary.Monthly, id int64) summary.Monthly {
			m.ID = &id
			return m
		}),
	}
}

// table is one id-keyed collection. Rows are returned in id order.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	withID func(T, int64) T
}

func newTable[T any](withID func(T, int64) T) *table[T] {
	return &table[T]{rows: make(map[int64]T), nextID: 1, withID: withID}
}

func (t *table[T]) all(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []T{}
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if row := t.rows[id]; keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	rows := t.all(match)
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}

func (t *table[T]) insert(row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	row = t.withID(row, t.nextID)
	t.rows[t.nextID] = row
	t.nextID++
	return row
}

// put replaces an existing row and reports whether it existed.
func (t *table[T]) put(id int64, row T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, false
	}
	row = t.withID(row, id)
	t.rows[id] = row
	return row, true
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// removeWhere deletes every matching row.
func (t *table[T]) removeWhere(match func(T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, row := range t.rows {
		if match(row) {
			delete(t.rows, id)
		}
	}
}

func idOrZero(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
