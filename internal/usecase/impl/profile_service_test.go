package impl

import (
	"context"
	"testing"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	mockRepo "aevum/internal/mocks/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockUserRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)

	svc := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		Logger:   newDiscardLogger(),
	})

	return svc, userRepo
}

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool       { return &b }

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	svc, userRepo := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := svc.GetProfile(ctx, userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_BadDateOfBirth(t *testing.T) {
	svc, _ := createTestProfileService(t)

	user, err := svc.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		DateOfBirth: strPtr("01/02/1990"),
	})

	assert.Nil(t, user)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestProfileService_UpdateProfile_FutureDateOfBirth(t *testing.T) {
	svc, _ := createTestProfileService(t)

	user, err := svc.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		DateOfBirth: strPtr("2999-01-01"),
	})

	assert.Nil(t, user)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestProfileService_UpdateProfile_BadPhone(t *testing.T) {
	svc, _ := createTestProfileService(t)

	user, err := svc.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		Phone: strPtr("not-a-phone"),
	})

	assert.Nil(t, user)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestProfileService_UpdateProfile_HeightOutOfRange(t *testing.T) {
	svc, _ := createTestProfileService(t)

	user, err := svc.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		HeightCm: floatPtr(450),
	})

	assert.Nil(t, user)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestProfileService_UpdateProfile_PartialMerge(t *testing.T) {
	svc, userRepo := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:   userID,
			Name: "Old Name",
			Profile: &entity.UserProfile{
				UserID:       userID,
				Gender:       "female",
				City:         "Lisbon",
				DietaryStyle: "omnivore",
			},
		}, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := svc.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Name:       strPtr("New Name"),
		HeightCm:   floatPtr(172.5),
		SleepHours: floatPtr(7.5),
		Smoker:     boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	require.NotNil(t, user.Profile.HeightCm)
	assert.InDelta(t, 172.5, *user.Profile.HeightCm, 0.001)
	require.NotNil(t, user.Profile.SleepHours)
	assert.InDelta(t, 7.5, *user.Profile.SleepHours, 0.001)
	// Untouched fields survive the partial update.
	assert.Equal(t, "female", user.Profile.Gender)
	assert.Equal(t, "Lisbon", user.Profile.City)
	assert.Equal(t, "omnivore", user.Profile.DietaryStyle)
}

func TestProfileService_UpdateProfile_CreatesMissingProfile(t *testing.T) {
	svc, userRepo := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Fresh Account"}, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := svc.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Gender: strPtr("male"),
	})

	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, userID, user.Profile.UserID)
	assert.Equal(t, "male", user.Profile.Gender)
}

func TestProfileService_GetUserRoles(t *testing.T) {
	svc, userRepo := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:         userID,
			LabProfile: &entity.LabProfile{UserID: userID, LabName: "Helix"},
		}, nil)

	roles, err := svc.GetUserRoles(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, []string{"user", "lab"}, roles)
}
