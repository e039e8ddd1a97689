package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Name      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`

	UserProfile     *UserProfileModel     `gorm:"foreignKey:UserID"`
	LabProfile      *LabProfileModel      `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserProfileModel mirrors the 'user_profiles' table. UserID references users.id (UUID).
type UserProfileModel struct {
	UserID uuid.UUID `gorm:"primaryKey"`

	// Demographics.
	DateOfBirth *time.Time `gorm:"type:date"`
	Gender      string     `gorm:"type:varchar(20)"`
	HeightCm    *float64
	WeightKg    *float64
	Phone       string `gorm:"type:varchar(30)"`
	AddressLine string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(100)"`
	PostalCode  string `gorm:"type:varchar(20)"`
	Country     string `gorm:"type:varchar(100)"`

	// Lifestyle.
	ActivityLevel string `gorm:"type:varchar(30)"`
	SleepHours    *float64
	Smoker        *bool
	AlcoholUse    string `gorm:"type:varchar(30)"`
	DietaryStyle  string `gorm:"type:varchar(30)"`

	// Consents.
	ResearchConsent  bool `gorm:"not null;default:false"`
	MarketingConsent bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// LabProfileModel mirrors the 'lab_profiles' table. Present only for lab accounts.
type LabProfileModel struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	LabName   string    `gorm:"type:varchar(100);not null"`
	LabCode   string    `gorm:"type:varchar(50);not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LabProfileModel) TableName() string {
	return "lab_profiles"
}
