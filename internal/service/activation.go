package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/signup-server/internal/logger"
	"github.com/dtroode/signup-server/internal/model"
)

// Activation transitions an account from inactive to active when the
// matching single-use token is presented.
type Activation struct {
	users  model.UserStore
	logger *logger.Logger
}

// NewActivation creates a new Activation service.
func NewActivation(users model.UserStore, logger *logger.Logger) *Activation {
	return &Activation{
		users:  users,
		logger: logger,
	}
}

// Activate looks up the account holding token and flips it to active,
// clearing the token. An unknown or already-consumed token returns
// ErrInvalidToken and mutates nothing.
func (s *Activation) Activate(ctx context.Context, token string) error {
	user, err := s.users.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Activation service: token not recognized")
		return model.ErrInvalidToken
	}
	if err != nil {
		s.logger.Error("Activation service: failed to look up token",
			"error", err.Error())
		return fmt.Errorf("failed to get user by token: %w", err)
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Lost the race against a concurrent activation of the
			// same token.
			return model.ErrInvalidToken
		}
		s.logger.Error("Activation service: failed to activate user",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to activate user: %w", err)
	}

	s.logger.Info("Activation service: account activated",
		"user_id", user.ID)

	return nil
}
