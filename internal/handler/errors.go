package handler

import (
	"errors"
	"net/http"

	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/pkg/response"
)

// writeServiceError maps the error taxonomy onto HTTP statuses: missing
// records are 404, rejected input is 400, broken books are 409, anything
// else is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var business *apperrors.BusinessError
	if !errors.As(err, &business) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch business.Code {
	case apperrors.ErrCodeNotFound:
		response.NotFound(w, business.Message)
	case apperrors.ErrCodeValidation:
		response.BadRequest(w, business.Message, business.Err)
	case apperrors.ErrCodeInconsistentState:
		response.Error(w, http.StatusConflict, business.Message, business.Err)
	default:
		response.InternalServerError(w, business.Message, business.Err)
	}
}
