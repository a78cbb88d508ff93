package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/export"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SummaryHandler interface {
	// GetMonthlySummary handles GET /summary/monthly?month=&year=
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
	// GetEmployeeSummary handles GET /summary/employee/{employeeId}
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
	// GenerateSummary handles POST /summary/generate?month=&year=
	GenerateSummary(w http.ResponseWriter, r *http.Request)
	// ExportSummary handles GET /summary/export?month=&year=
	ExportSummary(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
	summaries      summary.SummaryRepository
}

func NewSummaryHandler(summaryService summary.SummaryService, summaries summary.SummaryRepository) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
		summaries:      summaries,
	}
}

// periodParam parses the month and year query parameters.
func periodParam(w http.ResponseWriter, r *http.Request) (summary.Period, bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return summary.Period{}, false
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return summary.Period{}, false
	}

	p := summary.Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		response.HandleError(w, err)
		return summary.Period{}, false
	}
	return p, true
}

func (h *summaryHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	p, ok := periodParam(w, r)
	if !ok {
		return
	}

	result, err := h.summaries.List(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *summaryHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId")
	if !ok {
		return
	}

	result, err := h.summaries.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *summaryHandlerImpl) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := periodParam(w, r)
	if !ok {
		return
	}

	result, err := h.summaryService.Generate(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *summaryHandlerImpl) ExportSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := periodParam(w, r)
	if !ok {
		return
	}

	rows, err := h.summaries.List(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Render fully before writing headers so a failure can still answer 500.
	var buf bytes.Buffer
	if err := export.WriteSummary(&buf, p, rows); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendance-summary-"+p.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
