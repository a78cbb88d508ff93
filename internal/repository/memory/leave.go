package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	db *DB
}

func NewLeaveRequestRepository(db *DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, q leave.Query) ([]leave.Request, error) {
	return r.db.leaves.all(func(req leave.Request) bool {
		if q.PendingOnly && !req.IsPending() {
			return false
		}
		return q.EmployeeID == nil || sameID(req.EmployeeID, q.EmployeeID)
	}), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.Request, error) {
	req, ok := r.db.leaves.get(id)
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	return r.db.leaves.insert(req), nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.Request) (leave.Request, error) {
	updated, ok := r.db.leaves.put(idOrZero(req.ID), req)
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return updated, nil
}
