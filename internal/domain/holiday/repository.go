package holiday

import "context"

type HolidayRepository interface {
	// List returns holidays in q's range, or all of them when q is unranged.
	List(ctx context.Context, q Query) ([]Holiday, error)
	GetByID(ctx context.Context, id int64) (Holiday, error)
	GetByDate(ctx context.Context, date string) (Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id int64) error
}
