package summary

import "context"

type SummaryService interface {
	// Generate recomputes every active employee's row for p.
	Generate(ctx context.Context, p Period) ([]Monthly, error)
}
