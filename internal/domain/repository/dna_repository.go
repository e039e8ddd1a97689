// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for DNA persistence.
var (
	// ErrKitTypeNotFound is returned when a kit type is not found.
	ErrKitTypeNotFound = errors.New("kit type not found")
	// ErrOrderNotFound is returned when a kit order is not found.
	ErrOrderNotFound = errors.New("kit order not found")
	// ErrUploadNotFound is returned when a report upload is not found.
	ErrUploadNotFound = errors.New("report upload not found")
	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("report not found")
)

// KitTypeFilter narrows and orders the kit-type catalog listing.
type KitTypeFilter struct {
	Category string // Exact category match when non-empty.
	Search   string // Case-insensitive substring match on name/description.
	Ordering string // One of: name, price, -price, created_at, -created_at.
	Limit    int
	Offset   int
}

// DNAKitTypeRepository defines persistence operations for the kit catalog.
type DNAKitTypeRepository interface {
	// ListKitTypes returns active kit types matching the filter plus the
	// total count before pagination.
	ListKitTypes(ctx context.Context, filter KitTypeFilter) ([]*entity.DNAKitType, int64, error)

	// FindKitTypeByID retrieves a single kit type.
	FindKitTypeByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitType, error)
}

// DNAOrderRepository defines persistence operations for kit orders.
type DNAOrderRepository interface {
	// CreateOrder persists a new kit order.
	CreateOrder(ctx context.Context, order *entity.DNAKitOrder) error

	// FindOrderByID retrieves a single order with its kit type preloaded.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitOrder, error)

	// FindOrderByKitCode retrieves an order by the registration code on the kit.
	FindOrderByKitCode(ctx context.Context, kitCode string) (*entity.DNAKitOrder, error)

	// ListOrdersByUser returns a user's orders newest-first plus the total count.
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.DNAKitOrder, int64, error)

	// UpdateOrder persists status/tracking mutations on an order.
	UpdateOrder(ctx context.Context, order *entity.DNAKitOrder) error

	// CountOrdersByUserAndStatus counts a user's orders per status.
	CountOrdersByUserAndStatus(ctx context.Context, userID uuid.UUID) (map[entity.OrderStatus]int64, error)
}

// DNAUploadRepository defines persistence operations for raw report uploads.
type DNAUploadRepository interface {
	// CreateUpload persists a new upload record.
	CreateUpload(ctx context.Context, upload *entity.DNAReportUpload) error

	// FindUploadByID retrieves a single upload record.
	FindUploadByID(ctx context.Context, id uuid.UUID) (*entity.DNAReportUpload, error)

	// UpdateUpload persists status mutations on an upload record.
	UpdateUpload(ctx context.Context, upload *entity.DNAReportUpload) error
}

// DNAReportRepository defines persistence operations for parsed reports.
type DNAReportRepository interface {
	// CreateReport persists a report together with its result rows.
	CreateReport(ctx context.Context, report *entity.DNAReport) error

	// FindReportByOrderID retrieves the report for an order with results preloaded.
	FindReportByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.DNAReport, error)
}
