package impl

import (
	"context"
	"log/slog"

	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterDevice registers a new device or refreshes an existing one.
func (srv *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.UserDevice, error) {
	if deviceInfo.FCMToken == "" || deviceInfo.DeviceID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fcm_token and device_id are required")
	}

	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: deviceInfo.FCMToken,
		DeviceID: deviceInfo.DeviceID,
		Platform: deviceInfo.Platform,
		IsActive: true,
	}

	if err := srv.deviceRepo.UpsertDevice(ctx, device); err != nil {
		srv.log(ctx).Error("Failed to register device", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register device")
	}

	srv.log(ctx).Debug("Device registered", slog.Any("userID", userID), slog.String("deviceID", deviceInfo.DeviceID), slog.String("platform", deviceInfo.Platform))

	return device, nil
}

// GetUserDevices retrieves all active devices for a user.
func (srv *deviceService) GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user devices")
	}

	return devices, nil
}

// DeactivateDevice deactivates a device by its client-side device ID.
func (srv *deviceService) DeactivateDevice(ctx context.Context, userID uuid.UUID, deviceID string) error {
	if err := srv.deviceRepo.DeactivateDevice(ctx, userID, deviceID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("device not found")
		}

		return errors.Wrap(err, "failed to deactivate device")
	}

	srv.log(ctx).Debug("Device deactivated", slog.Any("userID", userID), slog.String("deviceID", deviceID))

	return nil
}
