package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ListEmployeeRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	requests     leave.LeaveRequestRepository
}

func NewLeaveHandler(leaveService leave.LeaveService, requests leave.LeaveRequestRepository) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		requests:     requests,
	}
}

func (l *LeaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, q leave.Query) {
	result, err := l.requests.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, leave.Query{})
}

// ListPendingRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, leave.Query{PendingOnly: true})
}

// ListEmployeeRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId")
	if !ok {
		return
	}
	l.list(w, r, leave.Query{EmployeeID: &employeeID})
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := l.requests.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest
	if !decodeJSON(w, r, "CreateLeaveRequest", &req) {
		return
	}

	result, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.leaveService.Approve)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.leaveService.Reject)
}

type reviewFunc func(ctx context.Context, id, reviewerID int64, req leave.ReviewRequest) (leave.Request, error)

func (l *LeaveHandlerImpl) review(w http.ResponseWriter, r *http.Request, fn reviewFunc) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	reviewerID, ok := middleware.UserID(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// Remarks are optional; an empty body is fine.
	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("ReviewLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := fn(r.Context(), id, reviewerID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
