package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DNAKitTypeModel mirrors the 'dna_kit_types' table, the purchasable kit catalog.
type DNAKitTypeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null"`
	TraitCount  int       `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DNAKitTypeModel) TableName() string {
	return "dna_kit_types"
}

// DNAKitOrderModel mirrors the 'dna_kit_orders' table.
type DNAKitOrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	KitTypeID       uuid.UUID `gorm:"type:uuid;not null"`
	KitCode         string    `gorm:"type:varchar(50);not null;unique"`
	Status          string    `gorm:"type:varchar(30);not null;index"`
	PriceCents      int64     `gorm:"not null"`
	ShippingAddress string    `gorm:"type:text;not null"`
	TrackingNumber  string    `gorm:"type:varchar(100)"`
	Consented       bool      `gorm:"not null;default:false"`
	ConsentType     string    `gorm:"type:varchar(50)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	KitType *DNAKitTypeModel `gorm:"foreignKey:KitTypeID"`
}

// TableName explicitly sets the table name for GORM.
func (DNAKitOrderModel) TableName() string {
	return "dna_kit_orders"
}

// DNAReportUploadModel mirrors the 'dna_report_uploads' table, one row per lab PDF upload.
type DNAReportUploadModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	BlobKey          string    `gorm:"type:varchar(255);not null"`
	OriginalFilename string    `gorm:"type:varchar(255);not null"`
	FileSize         int64     `gorm:"not null"`
	Status           string    `gorm:"type:varchar(20);not null"`
	FailureReason    string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (DNAReportUploadModel) TableName() string {
	return "dna_report_uploads"
}

// DNAReportModel mirrors the 'dna_reports' table, the parsed outcome of one upload.
type DNAReportModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	UploadID    uuid.UUID `gorm:"type:uuid;not null"`
	Summary     string    `gorm:"type:text"`
	Confidence  float64   `gorm:"not null;default:0"`
	Method      string    `gorm:"type:varchar(50);not null"`
	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Results []*DNAResultModel `gorm:"foreignKey:ReportID"`
}

// TableName explicitly sets the table name for GORM.
func (DNAReportModel) TableName() string {
	return "dna_reports"
}

// DNAResultModel mirrors the 'dna_results' table, one genetic finding per row.
type DNAResultModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ReportID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Trait      string    `gorm:"type:varchar(255);not null"`
	Category   string    `gorm:"type:varchar(50);not null"`
	RSID       string    `gorm:"column:rsid;type:varchar(20)"`
	Genotype   string    `gorm:"type:varchar(10)"`
	Outcome    string    `gorm:"type:text"`
	RiskLevel  string    `gorm:"type:varchar(20)"`
	Percentile *float64
	Confidence float64 `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DNAResultModel) TableName() string {
	return "dna_results"
}
