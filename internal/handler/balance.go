package handler

import (
	"net/http"
	"strconv"

	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

type BalanceHandler struct {
	service *service.BalanceService
}

func NewBalanceHandler(service *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// GetBalances rebuilds the per-member historic balance series. Accepts an
// optional period query parameter; defaults to the open period.
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	var periodID int64
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid period id", err)
			return
		}
		periodID = parsed
	}

	balances, err := h.service.GetPartnerBalances(r.Context(), periodID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, balances)
}

// ListPeriods returns every accounting period.
func (h *BalanceHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.service.Periods(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, periods)
}

// GetOpenPeriod returns the single running period.
func (h *BalanceHandler) GetOpenPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.service.OpenPeriod(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, period)
}
