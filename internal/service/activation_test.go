package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/signup-server/internal/mocks"
	"github.com/dtroode/signup-server/internal/model"
	"github.com/dtroode/signup-server/internal/testutil"
)

func TestActivation_Activate_Success(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}
	id := uuid.New()
	token := "tok-abc"

	users.On("GetByToken", mock.Anything, "tok-abc").Return(model.User{
		ID:              id,
		Status:          model.StatusInactive,
		ActivationToken: &token,
	}, nil)
	users.On("Activate", mock.Anything, id).Return(nil).Once()

	err := NewActivation(users, testutil.MakeNoopLogger()).Activate(ctx, "tok-abc")
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestActivation_Activate_UnknownToken(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}

	users.On("GetByToken", mock.Anything, "bogus").Return(model.User{}, model.ErrNotFound)

	err := NewActivation(users, testutil.MakeNoopLogger()).Activate(ctx, "bogus")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
	users.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

func TestActivation_Activate_RaceLostOnConsumedToken(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}
	id := uuid.New()
	token := "tok-abc"

	users.On("GetByToken", mock.Anything, "tok-abc").Return(model.User{
		ID:              id,
		Status:          model.StatusInactive,
		ActivationToken: &token,
	}, nil)
	users.On("Activate", mock.Anything, id).Return(model.ErrNotFound)

	err := NewActivation(users, testutil.MakeNoopLogger()).Activate(ctx, "tok-abc")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestActivation_Activate_StoreError(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}

	users.On("GetByToken", mock.Anything, mock.Anything).Return(model.User{}, errors.New("connection lost"))

	err := NewActivation(users, testutil.MakeNoopLogger()).Activate(ctx, "tok-abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidToken)
}
