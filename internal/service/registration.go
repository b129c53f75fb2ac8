package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/signup-server/internal/i18n"
	"github.com/dtroode/signup-server/internal/logger"
	"github.com/dtroode/signup-server/internal/model"
	"github.com/dtroode/signup-server/internal/validation"
)

// Registration orchestrates the account registration pipeline:
// validation, hashing, token issuance, persistence and notification.
// The notification step is compensated: if the activation email fails,
// the just-created account is deleted so no unreachable inactive row
// survives the request.
type Registration struct {
	users     model.UserStore
	validator *validation.Validator
	hasher    model.PasswordHasher
	tokens    model.TokenGenerator
	notifier  model.ActivationNotifier
	logger    *logger.Logger
}

// NewRegistration creates a new Registration service.
func NewRegistration(
	users model.UserStore,
	validator *validation.Validator,
	hasher model.PasswordHasher,
	tokens model.TokenGenerator,
	notifier model.ActivationNotifier,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		users:     users,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		notifier:  notifier,
		logger:    logger,
	}
}

// RegistrationInput carries raw client-submitted fields. Nil means the
// field was absent or null. Any client-supplied status or token material
// is never part of the input; new accounts are always created inactive
// with a fresh token.
type RegistrationInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	Locale   i18n.Locale
}

// Register runs the registration pipeline for one request. On validation
// failure it returns *model.ValidationError before any side effect. A
// uniqueness race lost at write time surfaces as a ValidationError on the
// email field. A notification failure returns ErrEmailDelivery after the
// compensating delete.
func (s *Registration) Register(ctx context.Context, in RegistrationInput) (model.User, error) {
	s.logger.Debug("Registration service: starting registration",
		"locale", in.Locale)

	fieldErrors, err := s.validator.Validate(ctx, validation.Input{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}, in.Locale)
	if err != nil {
		s.logger.Error("Registration service: validation pre-check failed",
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to validate registration input: %w", err)
	}
	if len(fieldErrors) > 0 {
		s.logger.Info("Registration service: input rejected",
			"fields", len(fieldErrors))
		return model.User{}, &model.ValidationError{Fields: fieldErrors}
	}

	digest, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to generate activation token: %w", err)
	}

	var role string
	if in.Role != nil {
		role = *in.Role
	}

	user := model.User{
		ID:              uuid.New(),
		Username:        *in.Username,
		Email:           *in.Email,
		PasswordDigest:  digest,
		Role:            role,
		Status:          model.StatusInactive,
		ActivationToken: &token,
	}

	saved, err := s.users.Create(ctx, user)
	if errors.Is(err, model.ErrEmailConflict) {
		s.logger.Info("Registration service: lost uniqueness race on email",
			"email", *in.Email)
		return model.User{}, &model.ValidationError{Fields: model.FieldErrors{
			{Field: "email", Message: i18n.Message(in.Locale, i18n.KeyEmailInUse)},
		}}
	}
	if err != nil {
		s.logger.Error("Registration service: failed to create user",
			"email", *in.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.notifier.SendActivation(ctx, saved.Email, token); err != nil {
		s.logger.Error("Registration service: activation email failed, rolling back",
			"email", saved.Email,
			"error", err.Error())
		// Best-effort compensation. A failed delete leaves an orphaned
		// inactive row and is only logged; the caller still sees the
		// email failure.
		if delErr := s.users.Delete(ctx, saved.ID); delErr != nil {
			s.logger.Error("Registration service: compensating delete failed",
				"user_id", saved.ID,
				"error", delErr.Error())
		}
		return model.User{}, model.ErrEmailDelivery
	}

	s.logger.Info("Registration service: user registered",
		"user_id", saved.ID,
		"email", saved.Email)

	return saved, nil
}
