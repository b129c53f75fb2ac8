// Package memory provides an in-memory UserStore used by handler tests and
// as a database-free development fallback. Semantics mirror the postgres
// repository, including the write-time email conflict.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/signup-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]model.User),
	}
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrEmailConflict
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user

	return user, nil
}

func (r *UserRepository) GetByToken(_ context.Context, token string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ActivationToken != nil && *u.ActivationToken == token {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) Activate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.Status != model.StatusInactive {
		return model.ErrNotFound
	}

	user.Status = model.StatusActive
	user.ActivationToken = nil
	user.UpdatedAt = time.Now()
	r.users[id] = user

	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *UserRepository) Ping(_ context.Context) error {
	return nil
}

// All returns a snapshot of every stored user, for tests.
func (r *UserRepository) All() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users
}
