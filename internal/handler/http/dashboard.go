package http

import (
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats handles GET /dashboard/stats
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
