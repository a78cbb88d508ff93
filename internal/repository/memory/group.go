package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
)

type groupRepositoryImpl struct {
	db *DB
}

func NewGroupRepository(db *DB) group.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

// List implements group.GroupRepository.
func (r *groupRepositoryImpl) List(ctx context.Context, q group.Query) ([]group.Group, error) {
	rows := r.db.groups.all(func(g group.Group) bool {
		return !q.ActiveOnly || g.Active()
	})
	for i := range rows {
		rows[i] = r.withEmployeeCount(rows[i])
	}
	return rows, nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepositoryImpl) GetByID(ctx context.Context, id int64) (group.Group, error) {
	g, ok := r.db.groups.get(id)
	if !ok {
		return group.Group{}, group.ErrGroupNotFound
	}
	return r.withEmployeeCount(g), nil
}

// Create implements group.GroupRepository.
func (r *groupRepositoryImpl) Create(ctx context.Context, g group.Group) (group.Group, error) {
	return r.withEmployeeCount(r.db.groups.insert(g)), nil
}

// Update implements group.GroupRepository.
func (r *groupRepositoryImpl) Update(ctx context.Context, g group.Group) (group.Group, error) {
	updated, ok := r.db.groups.put(idOrZero(g.ID), g)
	if !ok {
		return group.Group{}, group.ErrGroupNotFound
	}
	return r.withEmployeeCount(updated), nil
}

// Delete implements group.GroupRepository. Members of the group are left
// without one.
func (r *groupRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if !r.db.groups.remove(id) {
		return group.ErrGroupNotFound
	}
	for _, e := range r.db.employees.all(func(e employee.Employee) bool { return sameID(e.GroupID, &id) }) {
		e.GroupID = nil
		r.db.employees.put(*e.ID, e)
	}
	return nil
}

func (r *groupRepositoryImpl) withEmployeeCount(g group.Group) group.Group {
	g.EmployeeCount = len(r.db.employees.all(func(e employee.Employee) bool {
		return sameID(e.GroupID, g.ID)
	}))
	return g
}
