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

func createTestDeviceService(t *testing.T) (usecase.DeviceUsecase, *mockRepo.MockDeviceRepository) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)

	svc := NewDeviceService(DeviceServiceParams{
		DeviceRepo: deviceRepo,
		Logger:     newDiscardLogger(),
	})

	return svc, deviceRepo
}

func TestDeviceService_RegisterDevice_MissingFields(t *testing.T) {
	svc, _ := createTestDeviceService(t)

	device, err := svc.RegisterDevice(context.Background(), uuid.New(), &usecase.DeviceInfo{
		FCMToken: "fcm-token",
	})

	assert.Nil(t, device)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDeviceService_RegisterDevice_Success(t *testing.T) {
	svc, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("UpsertDevice", ctx, mock.MatchedBy(func(device *entity.UserDevice) bool {
		return device.UserID == userID && device.DeviceID == "pixel-9" && device.IsActive
	})).Return(nil)

	device, err := svc.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "fcm-token",
		DeviceID: "pixel-9",
		Platform: "android",
	})

	require.NoError(t, err)
	assert.True(t, device.IsActive)
	assert.Equal(t, "android", device.Platform)
}

func TestDeviceService_GetUserDevices(t *testing.T) {
	svc, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	devices := []*entity.UserDevice{
		{UserID: userID, DeviceID: "pixel-9", IsActive: true},
	}

	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).Return(devices, nil)

	got, err := svc.GetUserDevices(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, devices, got)
}

func TestDeviceService_DeactivateDevice_NotFound(t *testing.T) {
	svc, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("DeactivateDevice", ctx, userID, "gone-device").
		Return(repository.ErrDeviceNotFound)

	err := svc.DeactivateDevice(ctx, userID, "gone-device")

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeviceService_DeactivateDevice_Success(t *testing.T) {
	svc, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("DeactivateDevice", ctx, userID, "pixel-9").Return(nil)

	err := svc.DeactivateDevice(ctx, userID, "pixel-9")

	require.NoError(t, err)
}
