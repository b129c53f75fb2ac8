package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/signup-server/internal/i18n"
	"github.com/dtroode/signup-server/internal/model"
)

// handleError recovers a service failure into the uniform error envelope.
// Validation failures carry the per-field errors; every other kind maps to
// a summary message and status only.
func handleError(w http.ResponseWriter, r *http.Request, locale i18n.Locale, err error) {
	path := r.URL.Path

	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest,
			newErrorResponse(path, i18n.Message(locale, i18n.KeyValidationFailure), vErr.Fields))
	case errors.Is(err, model.ErrEmailDelivery):
		writeJSON(w, http.StatusBadGateway,
			newErrorResponse(path, i18n.Message(locale, i18n.KeyEmailFailure), nil))
	case errors.Is(err, model.ErrInvalidToken):
		writeJSON(w, http.StatusBadRequest,
			newErrorResponse(path, i18n.Message(locale, i18n.KeyTokenInvalid), nil))
	default:
		writeJSON(w, http.StatusInternalServerError,
			newErrorResponse(path, i18n.Message(locale, i18n.KeyInternalFailure), nil))
	}
}
