package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

type EgressHandler struct {
	service   *service.EgressService
	validator *validator.Validate
}

func NewEgressHandler(service *service.EgressService) *EgressHandler {
	return &EgressHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create posts a new egress.
func (h *EgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var newEgress domain.NewEgress
	if err := json.NewDecoder(r.Body).Decode(&newEgress); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&newEgress); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.PostEgress(r.Context(), &newEgress); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, newEgress.Header)
}

// List searches egresses under the query filters.
func (h *EgressHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := egressFilterFromQuery(r)

	egresses, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, egresses)
}

// Count aggregates egress volume under the query filters.
func (h *EgressHandler) Count(w http.ResponseWriter, r *http.Request) {
	filter := egressFilterFromQuery(r)

	counter, err := h.service.Count(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, counter)
}

func egressFilterFromQuery(r *http.Request) domain.EgressFilter {
	query := r.URL.Query()

	filter := domain.EgressFilter{
		PaymentType: query.Get("payment_type"),
		Limit:       queryInt(query.Get("limit"), 50),
		Offset:      queryInt(query.Get("offset"), 0),
	}

	if start, err := time.Parse(filterDateLayout, query.Get("start_date")); err == nil {
		filter.StartDate = start
	}
	if end, err := time.Parse(filterDateLayout, query.Get("end_date")); err == nil {
		filter.EndDate = end
	}

	return filter
}
