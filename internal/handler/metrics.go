package handler

import (
	"net/http"

	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

type MetricsHandler struct {
	service *service.MetricsService
}

func NewMetricsHandler(service *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

// GetMetrics returns the period's cash position.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	periodID, err := pathInt64(r, "period")
	if err != nil {
		response.BadRequest(w, "Invalid period id", err)
		return
	}

	metrics, err := h.service.GetMetrics(r.Context(), periodID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, metrics)
}

// GetTypeMetrics returns the period's per-charge-type net movements.
func (h *MetricsHandler) GetTypeMetrics(w http.ResponseWriter, r *http.Request) {
	periodID, err := pathInt64(r, "period")
	if err != nil {
		response.BadRequest(w, "Invalid period id", err)
		return
	}

	metrics, err := h.service.GetTypeMetrics(r.Context(), periodID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, metrics)
}
