package dashboard

import "context"

type DashboardService interface {
	// Stats computes today's numbers from stored attendance.
	Stats(ctx context.Context) (Stats, error)
}
