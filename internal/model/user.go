package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status describes the activation state of a user account.
type Status string

const (
	StatusInactive Status = "inactive"
	StatusActive   Status = "active"
)

// User represents a stored user account.
// ActivationToken is non-nil if and only if Status is StatusInactive.
type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	PasswordDigest  string
	Role            string
	Status          Status
	ActivationToken *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserStore defines persistence operations for user accounts.
// Email uniqueness is enforced by the store at write time; the
// advisory ExistsByEmail pre-check never replaces that guarantee.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create persists the user and assigns store-side fields.
	// Returns ErrEmailConflict if the email is already taken at write time.
	Create(ctx context.Context, user User) (User, error)
	// GetByToken returns the user holding the given activation token,
	// or ErrNotFound.
	GetByToken(ctx context.Context, token string) (User, error)
	// Activate sets the user active and clears the activation token.
	// Returns ErrNotFound if the user is absent or already active, so a
	// consumed token can never activate twice.
	Activate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
