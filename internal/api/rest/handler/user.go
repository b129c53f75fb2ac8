package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/signup-server/internal/api/rest/middleware"
	"github.com/dtroode/signup-server/internal/i18n"
	"github.com/dtroode/signup-server/internal/logger"
	"github.com/dtroode/signup-server/internal/model"
	"github.com/dtroode/signup-server/internal/service"
)

// RegistrationService defines the registration operation.
type RegistrationService interface {
	Register(ctx context.Context, in service.RegistrationInput) (model.User, error)
}

// ActivationService defines the token activation operation.
type ActivationService interface {
	Activate(ctx context.Context, token string) error
}

// User handles HTTP endpoints for registration and activation.
type User struct {
	registration RegistrationService
	activation   ActivationService
	logger       *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(registration RegistrationService, activation ActivationService, logger *logger.Logger) *User {
	return &User{
		registration: registration,
		activation:   activation,
		logger:       logger,
	}
}

// registerRequest carries the client-submitted registration fields.
// Status- or token-like fields a client may send are deliberately not
// mapped; accounts are always created inactive with a fresh token.
type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Register handles POST /api/1.0/users.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())

	// An unreadable body degrades to all-null fields, which the
	// validator reports per field.
	var req registerRequest
	_ = readJSON(r, &req)

	_, err := h.registration.Register(r.Context(), service.RegistrationInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Locale:   locale,
	})
	if err != nil {
		h.logger.Debug("User handler: registration failed",
			"error", err.Error())
		handleError(w, r, locale, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": i18n.Message(locale, i18n.KeyUserCreated),
	})
}

// Activate handles POST /api/1.0/users/token/{token}.
func (h *User) Activate(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	token := chi.URLParam(r, "token")

	if err := h.activation.Activate(r.Context(), token); err != nil {
		h.logger.Debug("User handler: activation failed",
			"error", err.Error())
		handleError(w, r, locale, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": i18n.Message(locale, i18n.KeyAccountActivated),
	})
}
