package attendance

import "context"

type AttendanceRepository interface {
	// List returns the records q selects.
	List(ctx context.Context, q Query) ([]Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	// Upsert stores r, replacing the record of the same employee and date.
	Upsert(ctx context.Context, r Record) (Record, error)
	Update(ctx context.Context, r Record) (Record, error)
}
