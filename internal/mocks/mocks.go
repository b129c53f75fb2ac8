// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/signup-server/internal/model"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByToken(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Activate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

type TokenGenerator struct {
	mock.Mock
}

func (m *TokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type ActivationNotifier struct {
	mock.Mock
}

func (m *ActivationNotifier) SendActivation(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}
