package memory

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	db *DB
}

func NewEmployeeRepository(db *DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, q employee.Query) ([]employee.Employee, error) {
	rows := r.db.employees.all(func(e employee.Employee) bool {
		if q.ActiveOnly && !e.Active() {
			return false
		}
		return q.GroupID == nil || sameID(e.GroupID, q.GroupID)
	})
	for i := range rows {
		rows[i] = r.withGroupName(rows[i])
	}
	return rows, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, ok := r.db.employees.get(id)
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.withGroupName(e), nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	e, ok := r.db.employees.find(func(e employee.Employee) bool {
		return e.EmployeeCode != "" && strings.EqualFold(e.EmployeeCode, code)
	})
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.withGroupName(e), nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if err := r.checkUnique(e, 0); err != nil {
		return employee.Employee{}, err
	}
	return r.withGroupName(r.db.employees.insert(e)), nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	id := idOrZero(e.ID)
	if err := r.checkUnique(e, id); err != nil {
		return employee.Employee{}, err
	}
	updated, ok := r.db.employees.put(id, e)
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.withGroupName(updated), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if !r.db.employees.remove(id) {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) checkUnique(e employee.Employee, self int64) error {
	for _, other := range r.db.employees.all(nil) {
		if idOrZero(other.ID) == self {
			continue
		}
		if e.EmployeeCode != "" && strings.EqualFold(other.EmployeeCode, e.EmployeeCode) {
			return employee.ErrEmployeeCodeExists
		}
		if strings.EqualFold(other.Email, e.Email) {
			return employee.ErrEmailExists
		}
	}
	return nil
}

func (r *employeeRepositoryImpl) withGroupName(e employee.Employee) employee.Employee {
	e.GroupName = ""
	if e.GroupID != nil {
		if g, ok := r.db.groups.get(*e.GroupID); ok {
			e.GroupName = g.Name
		}
	}
	return e
}
