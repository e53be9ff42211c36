package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

const filterDateLayout = "2006-01-02"

type EntryHandler struct {
	service   *service.EntryService
	validator *validator.Validate
}

func NewEntryHandler(service *service.EntryService) *EntryHandler {
	return &EntryHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GetCharges returns what the account owes right now.
func (h *EntryHandler) GetCharges(w http.ResponseWriter, r *http.Request) {
	account, err := pathInt64(r, "account")
	if err != nil {
		response.BadRequest(w, "Invalid account number", err)
		return
	}

	charges, err := h.service.GetEntryCharges(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, charges)
}

// Create posts a new entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var newEntry domain.NewEntry
	if err := json.NewDecoder(r.Body).Decode(&newEntry); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&newEntry); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.PostEntry(r.Context(), &newEntry); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, newEntry.Header)
}

// List searches entries under the query filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entryFilterFromQuery(r)

	entries, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, entries)
}

// Count aggregates entry volume under the query filters.
func (h *EntryHandler) Count(w http.ResponseWriter, r *http.Request) {
	filter := entryFilterFromQuery(r)

	counter, err := h.service.Count(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, counter)
}

// GetBreakdown returns one entry's full detail view.
func (h *EntryHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt64(r, "number")
	if err != nil {
		response.BadRequest(w, "Invalid entry number", err)
		return
	}

	breakdown, err := h.service.GetBreakdown(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, breakdown)
}

// ListTypes returns the charge type catalog.
func (h *EntryHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, types)
}

// ListContributions returns an account's contribution history.
func (h *EntryHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	account, err := pathInt64(r, "account")
	if err != nil {
		response.BadRequest(w, "Invalid account number", err)
		return
	}

	contributions, err := h.service.ListContributions(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, contributions)
}

func entryFilterFromQuery(r *http.Request) domain.EntryFilter {
	query := r.URL.Query()

	filter := domain.EntryFilter{
		PaymentType: query.Get("payment_type"),
		Limit:       queryInt(query.Get("limit"), 50),
		Offset:      queryInt(query.Get("offset"), 0),
	}

	if account, err := strconv.ParseInt(query.Get("account"), 10, 64); err == nil {
		filter.Account = account
	}
	if start, err := time.Parse(filterDateLayout, query.Get("start_date")); err == nil {
		filter.StartDate = start
	}
	if end, err := time.Parse(filterDateLayout, query.Get("end_date")); err == nil {
		filter.EndDate = end
	}

	return filter
}

func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func queryInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
