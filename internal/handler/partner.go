package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/service"
	"github.com/cajacoop/caja-engine/pkg/response"
)

type PartnerHandler struct {
	service   *service.PersonService
	validator *validator.Validate
}

func NewPartnerHandler(service *service.PersonService) *PartnerHandler {
	return &PartnerHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create registers a member and opens their savings account.
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	account, err := h.service.CreatePartner(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, account)
}

// Update rewrites a member's identity fields.
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	dni := mux.Vars(r)["dni"]
	if dni == "" {
		response.BadRequest(w, "DNI is required", nil)
		return
	}

	var request domain.UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.UpdatePerson(r.Context(), dni, &request); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, request)
}

// Disable soft-disables an account.
func (h *PartnerHandler) Disable(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt64(r, "account")
	if err != nil {
		response.BadRequest(w, "Invalid account number", err)
		return
	}

	if err := h.service.DisableAccount(r.Context(), number); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]int64{"account": number})
}

// Get returns one account.
func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt64(r, "account")
	if err != nil {
		response.BadRequest(w, "Invalid account number", err)
		return
	}

	account, err := h.service.GetAccount(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, account)
}

// List returns the roster with derived status badges.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	partners, err := h.service.ListPartners(
		r.Context(),
		query.Get("active") == "true",
		queryInt(query.Get("limit"), 50),
		queryInt(query.Get("offset"), 0),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, partners)
}

// Count returns the roster size.
func (h *PartnerHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountPartners(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]int64{"count": count})
}
