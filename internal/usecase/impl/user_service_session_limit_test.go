package impl

import (
	"context"
	"testing"
	"time"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Login_UnderSessionLimit(t *testing.T) {
	fx := createTestUserService(t, 2)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{Email: "test@example.com", Password: "Password123!"}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: input.Email}, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"user"}).
		Return("access_token", "refresh_token", nil)

	// The limited path locks the user row before counting sessions.
	fx.userRepo.On("AcquireSessionMutex", ctx, userID).Return(nil)
	fx.refreshTokenRepo.On("CountActiveSessionsByUserID", ctx, userID).Return(1, nil)
	fx.tokenService.On("HashToken", "refresh_token").Return("refresh_hash")
	fx.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access_token", output.AccessToken)
}

func TestUserService_Login_SessionLimitExceeded(t *testing.T) {
	fx := createTestUserService(t, 2)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{Email: "test@example.com", Password: "Password123!"}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: input.Email}, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"user"}).
		Return("access_token", "refresh_token", nil)

	fx.userRepo.On("AcquireSessionMutex", ctx, userID).Return(nil)
	fx.refreshTokenRepo.On("CountActiveSessionsByUserID", ctx, userID).Return(2, nil)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrSessionLimitExceeded)
	fx.refreshTokenRepo.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}
