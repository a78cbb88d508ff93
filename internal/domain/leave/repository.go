package leave

import "context"

type LeaveRequestRepository interface {
	List(ctx context.Context, q Query) ([]Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	Create(ctx context.Context, r Request) (Request, error)
	Update(ctx context.Context, r Request) (Request, error)
}
