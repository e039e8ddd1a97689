// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrDeviceNotFound is returned when a device record is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines persistence operations for push-notification devices.
type DeviceRepository interface {
	// UpsertDevice creates the device or, when the (user, device_id) pair
	// already exists, refreshes its FCM token and reactivates it.
	UpsertDevice(ctx context.Context, device *entity.UserDevice) error

	// FindActiveDevicesByUser retrieves all active devices for a user.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice marks a device inactive by its client-side device ID.
	DeactivateDevice(ctx context.Context, userID uuid.UUID, deviceID string) error
}
