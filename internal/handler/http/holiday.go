package http

import (
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

type HolidayHandler interface {
	ListHolidays(w http.ResponseWriter, r *http.Request)
	ListHolidaysInRange(w http.ResponseWriter, r *http.Request)
	GetHoliday(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	UpdateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidays holiday.HolidayRepository
}

func NewHolidayHandler(holidays holiday.HolidayRepository) HolidayHandler {
	return &holidayHandlerImpl{holidays: holidays}
}

// ListHolidays implements HolidayHandler
func (h *holidayHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	result, err := h.holidays.List(r.Context(), holiday.Query{})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListHolidaysInRange implements HolidayHandler
func (h *holidayHandlerImpl) ListHolidaysInRange(w http.ResponseWriter, r *http.Request) {
	q := holiday.Query{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if !q.Ranged() {
		response.BadRequest(w, "start and end are required", nil)
		return
	}
	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidays.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetHoliday implements HolidayHandler
func (h *holidayHandlerImpl) GetHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.holidays.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateHoliday implements HolidayHandler
func (h *holidayHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.SaveRequest
	if !decodeJSON(w, r, "CreateHoliday", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.holidays.Create(r.Context(), holidayFrom(req))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// UpdateHoliday implements HolidayHandler
func (h *holidayHandlerImpl) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req holiday.SaveRequest
	if !decodeJSON(w, r, "UpdateHoliday", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	hol := holidayFrom(req)
	hol.ID = &id
	updated, err := h.holidays.Update(r.Context(), hol)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteHoliday implements HolidayHandler
func (h *holidayHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.holidays.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

func holidayFrom(req holiday.SaveRequest) holiday.Holiday {
	return holiday.Holiday{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		IsOptional:  req.IsOptional,
	}
}
