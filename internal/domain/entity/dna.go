// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of a DNA kit order.
type OrderStatus string

// Order lifecycle states. Transitions are validated server-side; see
// CanTransitionTo.
const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusConfirmed        OrderStatus = "CONFIRMED"
	OrderStatusShipped          OrderStatus = "SHIPPED"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusSampleReceived   OrderStatus = "SAMPLE_RECEIVED"
	OrderStatusProcessing       OrderStatus = "PROCESSING"
	OrderStatusResultsGenerated OrderStatus = "RESULTS_GENERATED"
	OrderStatusCompleted        OrderStatus = "COMPLETED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
	OrderStatusFailed           OrderStatus = "FAILED"
)

// orderTransitions is the legal edge set of the order state machine.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:        {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:          {OrderStatusDelivered},
	OrderStatusDelivered:        {OrderStatusSampleReceived},
	OrderStatusSampleReceived:   {OrderStatusProcessing},
	OrderStatusProcessing:       {OrderStatusResultsGenerated, OrderStatusFailed},
	OrderStatusResultsGenerated: {OrderStatusCompleted},
	OrderStatusCompleted:        {},
	OrderStatusCancelled:        {},
	OrderStatusFailed:           {},
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// ReportVisible reports whether results may be shown to the member for an
// order in this status ("Show Report" rule).
func (s OrderStatus) ReportVisible() bool {
	return s == OrderStatusResultsGenerated || s == OrderStatusCompleted
}

// DNAKitType is a purchasable DNA testing product in the catalog.
type DNAKitType struct {
	ID          uuid.UUID
	Name        string  // Display name, e.g. "Ancestry + Traits".
	Category    string  // Catalog category: ancestry, health, wellness, nutrition.
	Description string  // Marketing description shown in the catalog.
	PriceCents  int64   // Price in the store currency's minor unit.
	TraitCount  int     // Number of traits covered by the panel.
	IsActive    bool    // Inactive kit types are hidden from the catalog.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DNAKitOrder is a member's purchase record for a kit.
type DNAKitOrder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	KitTypeID       uuid.UUID
	KitType         *DNAKitType // Loaded for display; may be nil.
	KitCode         string      // Registration code printed on the physical kit.
	Status          OrderStatus
	PriceCents      int64  // Price snapshot taken at order time.
	ShippingAddress string
	TrackingNumber  string // Set when the kit ships.
	Consented       bool   // Whether the member gave processing consent at order time.
	ConsentType     string // e.g. "full", "research_excluded".
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Upload processing states for DNA report PDFs.
const (
	UploadStatusUploaded  = "UPLOADED"
	UploadStatusProcessed = "PROCESSED"
	UploadStatusFailed    = "FAILED"
)

// DNAReportUpload records a raw PDF uploaded for an order, stored in blob storage.
type DNAReportUpload struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	BlobKey          string // Object key inside the documents bucket.
	OriginalFilename string
	FileSize         int64
	Status           string // UPLOADED, PROCESSED, FAILED.
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DNAReport is the parsed analysis output tied to a completed order.
type DNAReport struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	UploadID    uuid.UUID
	Summary     string    // Short generated summary of the panel.
	Confidence  float64   // Aggregate extraction confidence in [0,1].
	Method      string    // Extraction method that produced the text.
	GeneratedAt time.Time
	Results     []*DNAResult
	CreatedAt   time.Time
}

// DNAResult is a single trait/risk finding inside a report.
type DNAResult struct {
	ID         uuid.UUID
	ReportID   uuid.UUID
	Trait      string  // Human-readable trait name, e.g. "Lactose tolerance".
	Category   string  // trait or risk.
	RSID       string  // Marker identifier, e.g. "rs4988235".
	Genotype   string  // e.g. "A/G".
	Outcome    string  // Parsed outcome, e.g. "Likely tolerant", "Elevated risk".
	RiskLevel  string  // low, average, elevated, high; empty for plain traits.
	Percentile *float64
	Confidence float64 // Extraction confidence for this row in [0,1].
	CreatedAt  time.Time
}
