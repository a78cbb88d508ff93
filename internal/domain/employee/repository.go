package employee

import "context"

type EmployeeRepository interface {
	List(ctx context.Context, q Query) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
