package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	user.UserRepository
	logger *slog.Logger
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, *req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.Request{}, employee.ErrEmployeeNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}

	existing, err := l.LeaveRequestRepository.List(ctx, leave.Query{EmployeeID: emp.ID})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	for _, other := range existing {
		if other.Status == leave.StatusRejected {
			continue
		}
		if other.StartDate <= req.EndDate && req.StartDate <= other.EndDate {
			return leave.Request{}, leave.ErrOverlappingLeave
		}
	}

	created, err := l.LeaveRequestRepository.Create(ctx, leave.Request{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
		LeaveType:    req.LeaveType,
		Status:       leave.StatusPending,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	l.logger.Info("Leave request submitted", "leave_id", *created.ID, "employee_id", *emp.ID)
	return created, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id, reviewerID int64, req leave.ReviewRequest) (leave.Request, error) {
	return l.review(ctx, id, reviewerID, leave.StatusApproved, req)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, id, reviewerID int64, req leave.ReviewRequest) (leave.Request, error) {
	return l.review(ctx, id, reviewerID, leave.StatusRejected, req)
}

func (l *LeaveServiceImpl) review(ctx context.Context, id, reviewerID int64, status leave.Status, req leave.ReviewRequest) (leave.Request, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if !request.IsPending() {
		return leave.Request{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	reviewer, err := l.UserRepository.GetByID(ctx, reviewerID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get reviewer: %w", err)
	}

	request.Status = status
	request.ApprovedBy = &reviewer.ID
	request.ApprovedByName = reviewer.Name
	request.AdminRemarks = req.Remarks

	updated, err := l.LeaveRequestRepository.Update(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	l.logger.Info("Leave request reviewed", "leave_id", id, "status", status, "reviewer_id", reviewerID)
	return updated, nil
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	logger *slog.Logger,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		UserRepository:         userRepo,
		logger:                 logger.With(slog.String("service", "leave")),
	}
}
