package summary

import "context"

type SummaryRepository interface {
	List(ctx context.Context, p Period) ([]Monthly, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Monthly, error)
	// Replace swaps the stored rows of p for rows.
	Replace(ctx context.Context, p Period, rows []Monthly) ([]Monthly, error)
}
