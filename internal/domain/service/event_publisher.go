package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportEvent is published when a lab uploads a raw DNA report PDF.
// The report worker consumes it to extract results asynchronously.
type ReportEvent struct {
	RequestID  string    `json:"requestId"`
	UploadID   uuid.UUID `json:"uploadId"`
	OrderID    uuid.UUID `json:"orderId"`
	UserID     uuid.UUID `json:"userId"`
	BlobKey    string    `json:"blobKey"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// EventPublisher defines the interface for publishing report processing events.
type EventPublisher interface {
	// PublishReportEvent publishes a report event for asynchronous processing.
	PublishReportEvent(ctx context.Context, event *ReportEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
