package http

import (
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListRange(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployeeRange(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	records           attendance.AttendanceRepository
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, records attendance.AttendanceRepository) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		records:           records,
	}
}

func (h *attendanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, q attendance.Query) {
	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.records.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, attendance.ForDate(chi.URLParam(r, "date")))
}

// ListRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, attendance.Query{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	})
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId")
	if !ok {
		return
	}
	h.list(w, r, attendance.Query{EmployeeID: &employeeID})
}

// ListEmployeeRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEmployeeRange(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId")
	if !ok {
		return
	}
	h.list(w, r, attendance.Query{
		EmployeeID: &employeeID,
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req attendance.UpdateRequest
	if !decodeJSON(w, r, "UpdateAttendance", &req) {
		return
	}

	result, err := h.attendanceService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Process implements AttendanceHandler.
func (h *attendanceHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req attendance.ProcessChatRequest
	if !decodeJSON(w, r, "ProcessAttendance", &req) {
		return
	}

	result, err := h.attendanceService.ProcessChat(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
