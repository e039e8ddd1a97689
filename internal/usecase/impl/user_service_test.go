package impl

import (
	"context"
	"testing"
	"time"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/domain/service"
	mockRepo "aevum/internal/mocks/repository"
	mockSvc "aevum/internal/mocks/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T, maxActiveSessions int) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	authRepo := mockRepo.NewMockAuthRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	txManager := &mockRepo.PassthroughTxManager{Factory: &mockRepo.StubRepositoryFactory{
		Users:         userRepo,
		Auths:         authRepo,
		RefreshTokens: refreshTokenRepo,
	}}

	svc := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		AuthRepo:         authRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           newTestConfig(maxActiveSessions),
		Logger:           newDiscardLogger(),
	})

	return userServiceFixtures{
		service:          svc,
		userRepo:         userRepo,
		authRepo:         authRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)
	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)
	fx.authRepo.On("CreateAuthentication", ctx, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)

	output, err := fx.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, input.Name, output.User.Name)
	assert.NotNil(t, output.User.Profile)
	assert.Nil(t, output.User.LabProfile)
}

func TestUserService_RegisterUser_WeakPassword(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "weak",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)
	fx.hasher.On("ValidatePasswordStrength", input.Password).
		Return(domainerrors.ErrPasswordStrength)

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestUserService_RegisterUser_ExistingAccountWrongPassword(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			Provider:     entity.ProviderTypeEmail,
			PasswordHash: "stored_hash",
		}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(false)

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_RegisterUser_ProfileAlreadyExists(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    "member@example.com",
		Password: "Password123!",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:      userID,
			Email:   input.Email,
			Profile: &entity.UserProfile{UserID: userID},
		}, nil)

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_RegisterLab_AttachesToExistingAccount(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RegisterLabInput{
		Name:     "Lab Operator",
		Email:    "lab@example.com",
		Password: "Password123!",
		LabName:  "Helix Diagnostics",
		LabCode:  "HLX-01",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:      userID,
			Email:   input.Email,
			Name:    "Existing Member",
			Profile: &entity.UserProfile{UserID: userID},
		}, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	output, err := fx.service.RegisterLab(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.User.LabProfile)
	assert.Equal(t, input.LabName, output.User.LabProfile.LabName)
	assert.Equal(t, input.LabCode, output.User.LabProfile.LabCode)
	assert.Equal(t, input.Name, output.User.Name)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: input.Email}, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"user"}).
		Return("access_token", "refresh_token", nil)
	fx.tokenService.On("HashToken", "refresh_token").Return("refresh_hash")
	fx.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(args mock.Arguments) {
			token := args.Get(1).(*entity.RefreshToken)
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, "refresh_hash", token.TokenHash)
		}).
		Return(nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access_token", output.AccessToken)
	assert.Equal(t, "refresh_token", output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestUserService_Login_LabAccountGetsLabRole(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{Email: "lab@example.com", Password: "Password123!"}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:         userID,
			Email:      input.Email,
			LabProfile: &entity.LabProfile{UserID: userID, LabName: "Helix"},
		}, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"user", "lab"}).
		Return("access_token", "refresh_token", nil)
	fx.tokenService.On("HashToken", "refresh_token").Return("refresh_hash")
	fx.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	_, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "test@example.com", Password: "wrong"}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ID: uuid.New(), UserID: uuid.New(), PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.Password, "stored_hash").Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "ghost@example.com", Password: "Password123!"}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	// Unknown accounts and wrong passwords are indistinguishable to the caller.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_RefreshToken_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RefreshTokenInput{RefreshToken: "raw_refresh"}

	fx.tokenService.On("ValidateRefreshToken", "raw_refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	fx.tokenService.On("HashToken", "raw_refresh").Return("refresh_hash")
	fx.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh_hash").
		Return(&entity.RefreshToken{ID: uuid.New(), UserID: userID}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"user"}).
		Return("new_access", "unused_refresh", nil)

	output, err := fx.service.RefreshToken(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "new_access", output.AccessToken)
}

func TestUserService_RefreshToken_SessionRevoked(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RefreshTokenInput{RefreshToken: "raw_refresh"}

	fx.tokenService.On("ValidateRefreshToken", "raw_refresh").
		Return(&service.Claims{UserID: uuid.New(), Type: "refresh"}, nil)
	fx.tokenService.On("HashToken", "raw_refresh").Return("refresh_hash")
	fx.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh_hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	output, err := fx.service.RefreshToken(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_RefreshToken_InvalidToken(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RefreshTokenInput{RefreshToken: "garbage"}

	fx.tokenService.On("ValidateRefreshToken", "garbage").
		Return(nil, errors.New("token is malformed"))

	output, err := fx.service.RefreshToken(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.LogoutInput{RefreshToken: "raw_refresh"}

	fx.tokenService.On("ValidateRefreshToken", "raw_refresh").
		Return(&service.Claims{UserID: uuid.New(), Type: "refresh"}, nil)
	fx.tokenService.On("HashToken", "raw_refresh").Return("refresh_hash")
	fx.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "refresh_hash").Return(nil)

	err := fx.service.Logout(ctx, input)

	require.NoError(t, err)
}

func TestUserService_Logout_Idempotent(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.LogoutInput{RefreshToken: "expired_refresh"}

	// Even an invalid token is hashed and deleted, and an already-ended
	// session logs out without error.
	fx.tokenService.On("ValidateRefreshToken", "expired_refresh").
		Return(nil, errors.New("token is expired"))
	fx.tokenService.On("HashToken", "expired_refresh").Return("refresh_hash")
	fx.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "refresh_hash").
		Return(repository.ErrRefreshTokenNotFound)

	err := fx.service.Logout(ctx, input)

	require.NoError(t, err)
}

func TestUserService_ChangePassword_ConfirmMismatch(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.ChangePasswordInput{
		OldPassword:     "OldPassword123!",
		NewPassword:     "NewPassword123!",
		ConfirmPassword: "Different123!",
	}

	err := fx.service.ChangePassword(ctx, uuid.New(), input)

	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{
		OldPassword:     "wrong",
		NewPassword:     "NewPassword123!",
		ConfirmPassword: "NewPassword123!",
	}

	fx.hasher.On("ValidatePasswordStrength", input.NewPassword).Return(nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com"}, nil)
	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "test@example.com").
		Return(&entity.Authentication{ID: uuid.New(), UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.OldPassword, "stored_hash").Return(false)

	err := fx.service.ChangePassword(ctx, userID, input)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_ChangePassword_SuccessRevokesSessions(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	authID := uuid.New()
	input := &usecase.ChangePasswordInput{
		OldPassword:     "OldPassword123!",
		NewPassword:     "NewPassword123!",
		ConfirmPassword: "NewPassword123!",
	}

	fx.hasher.On("ValidatePasswordStrength", input.NewPassword).Return(nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com"}, nil)
	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "test@example.com").
		Return(&entity.Authentication{ID: authID, UserID: userID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", input.OldPassword, "stored_hash").Return(true)
	fx.hasher.On("Hash", input.NewPassword).Return("new_hash", nil)
	fx.authRepo.On("UpdatePasswordHash", ctx, authID, "new_hash").Return(nil)
	fx.refreshTokenRepo.On("DeleteRefreshTokensByUserID", ctx, userID).Return(nil)

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
}
