package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create originates a loan with its amortization schedule.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	definition, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, definition)
}

// Restructure rewrites a loan's schedule during a renegotiation.
func (h *LoanHandler) Restructure(w http.ResponseWriter, r *http.Request) {
	var request domain.RestructureLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.Restructure(r.Context(), &request); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, request)
}

// GetSchedule returns a loan's full amortization schedule.
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt64(r, "number")
	if err != nil {
		response.BadRequest(w, "Invalid loan number", err)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, schedule)
}

// List searches loans with derived statuses.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.LoanFilter{
		Limit:  queryInt(query.Get("limit"), 50),
		Offset: queryInt(query.Get("offset"), 0),
	}
	if account, err := strconv.ParseInt(query.Get("account"), 10, 64); err == nil {
		filter.Account = account
	}

	loans, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, loans)
}

// Count returns the total number of loans.
func (h *LoanHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]int64{"count": count})
}

// StatusSummary recomputes and returns the per-status loan counts.
func (h *LoanHandler) StatusSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RefreshStatusSummary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, summary)
}
