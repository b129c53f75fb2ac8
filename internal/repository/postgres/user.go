package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/signup-server/internal/model"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

// emailUniqueConstraint matches the index name in the users migration. The
// token column carries its own unique index, so a bare 23505 check is not
// enough to name the conflicting field.
const emailUniqueConstraint = "users_email_key"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// Create inserts the user. The unique index on email is the authoritative
// uniqueness guard; a racing duplicate insert surfaces as ErrEmailConflict.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	now := time.Now()
	query := `INSERT INTO users (id, username, email, password_digest, role, status, activation_token, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, username, email, password_digest, role, status, activation_token, created_at, updated_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordDigest, user.Role,
		user.Status, user.ActivationToken, now, now,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.Email, &savedUser.PasswordDigest,
		&savedUser.Role, &savedUser.Status, &savedUser.ActivationToken,
		&savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueConstraint {
			return model.User{}, model.ErrEmailConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_digest, role, status, activation_token, created_at, updated_at
			  FROM users WHERE activation_token = $1`

	err := r.db.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordDigest,
		&user.Role, &user.Status, &user.ActivationToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by token: %w", err)
	}

	return user, nil
}

// Activate flips the user to active and clears the token. The status guard
// in the WHERE clause makes a second activation of the same row a miss.
func (r *UserRepository) Activate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET status = $1, activation_token = NULL, updated_at = $2
			  WHERE id = $3 AND status = $4`

	tag, err := r.db.Exec(ctx, query, model.StatusActive, time.Now(), id, model.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
