package usecase

import (
	"context"

	"aevum/internal/domain/entity"
	"aevum/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListKitTypesInput narrows and pages the kit catalog listing.
type ListKitTypesInput struct {
	Category string
	Search   string
	Ordering string // name, price, -price, created_at, -created_at.
	Page     int
	PageSize int
}

// CreateOrderInput defines the data required to order a DNA kit.
type CreateOrderInput struct {
	KitTypeID       uuid.UUID
	ShippingAddress string
	Consented       bool
	ConsentType     string
}

// ListOrdersInput pages a member's order history.
type ListOrdersInput struct {
	Page     int
	PageSize int
}

// UpdateOrderStatusInput defines a lab-side order status change.
type UpdateOrderStatusInput struct {
	Status         entity.OrderStatus
	TrackingNumber string // Optional; recorded with SHIPPED.
}

// UploadReportInput carries an uploaded DNA report PDF for an order.
type UploadReportInput struct {
	OrderID     uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
}

// --- Output DTOs ---

// KitTypeListOutput returns one page of the kit catalog.
type KitTypeListOutput struct {
	KitTypes []*entity.DNAKitType
	Total    int64
	Page     int
	PageSize int
}

// OrderListOutput returns one page of a member's orders.
type OrderListOutput struct {
	Orders   []*entity.DNAKitOrder
	Total    int64
	Page     int
	PageSize int
}

// UploadReportOutput describes the stored upload awaiting processing.
type UploadReportOutput struct {
	UploadID         uuid.UUID `json:"upload_id"`
	Status           string    `json:"status"`
	FileURL          string    `json:"file_url"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
}

// DNADashboardOutput aggregates a member's DNA activity.
type DNADashboardOutput struct {
	TotalOrders  int64                        `json:"total_orders"`
	StatusCounts map[entity.OrderStatus]int64 `json:"status_counts"`
	ReportsReady int64                        `json:"reports_ready"`
	RecentOrders []*entity.DNAKitOrder        `json:"recent_orders"`
}

// DNAUsecase defines the interface for DNA kit and report business operations.
type DNAUsecase interface {
	// ListKitTypes returns the active kit catalog.
	ListKitTypes(ctx context.Context, input *ListKitTypesInput) (*KitTypeListOutput, error)

	// GetKitType retrieves a single catalog entry.
	GetKitType(ctx context.Context, id uuid.UUID) (*entity.DNAKitType, error)

	// CreateOrder places a kit order for the user. Processing consent is
	// required; the price is snapshotted and a kit code generated.
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.DNAKitOrder, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID, input *ListOrdersInput) (*OrderListOutput, error)

	// GetOrder retrieves one of the user's orders.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAKitOrder, error)

	// CancelOrder cancels an order still in PENDING or CONFIRMED.
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAKitOrder, error)

	// GenerateKitQR renders the order's kit registration code as a PNG QR code.
	GenerateKitQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)

	// UpdateOrderStatus applies a lab-side status transition. Illegal
	// transitions are rejected.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *UpdateOrderStatusInput) (*entity.DNAKitOrder, error)

	// UploadReportPDF validates and stores a raw report PDF, records the
	// upload, and publishes a processing event.
	UploadReportPDF(ctx context.Context, input *UploadReportInput) (*UploadReportOutput, error)

	// GetReport returns the parsed report for an order once its results
	// are visible (RESULTS_GENERATED or COMPLETED).
	GetReport(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAReport, error)

	// GetDashboard aggregates the user's order counts and recent orders.
	GetDashboard(ctx context.Context, userID uuid.UUID) (*DNADashboardOutput, error)
}

// ReportProcessorUsecase consumes report events published on upload.
type ReportProcessorUsecase interface {
	// ProcessReportEvent loads the uploaded PDF, extracts and parses
	// results, persists the report, and advances the order. A non-nil
	// error marks a retryable failure; permanent parse failures mark the
	// upload FAILED and return nil so the message is acked.
	ProcessReportEvent(ctx context.Context, event *service.ReportEvent) error
}
