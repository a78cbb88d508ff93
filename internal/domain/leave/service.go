package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyRequest) (Request, error)
	// Approve and Reject review a pending request on behalf of reviewerID.
	Approve(ctx context.Context, id, reviewerID int64, req ReviewRequest) (Request, error)
	Reject(ctx context.Context, id, reviewerID int64, req ReviewRequest) (Request, error)
}
