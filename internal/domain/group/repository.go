package group

import "context"

type GroupRepository interface {
	List(ctx context.Context, q Query) ([]Group, error)
	GetByID(ctx context.Context, id int64) (Group, error)
	Create(ctx context.Context, g Group) (Group, error)
	Update(ctx context.Context, g Group) (Group, error)
	Delete(ctx context.Context, id int64) error
}
