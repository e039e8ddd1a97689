// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the data for a partial profile update.
// Only non-nil fields are written.
type UpdateProfileInput struct {
	Name        *string `json:"name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // "YYYY-MM-DD"
	Gender      *string `json:"gender,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	AddressLine *string `json:"address_line,omitempty"`
	City        *string `json:"city,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Country     *string `json:"country,omitempty"`

	ActivityLevel *string  `json:"activity_level,omitempty"`
	SleepHours    *float64 `json:"sleep_hours,omitempty"`
	Smoker        *bool    `json:"smoker,omitempty"`
	AlcoholUse    *string  `json:"alcohol_use,omitempty"`
	DietaryStyle  *string  `json:"dietary_style,omitempty"`

	ResearchConsent  *bool `json:"research_consent,omitempty"`
	MarketingConsent *bool `json:"marketing_consent,omitempty"`
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile loads the user with their health profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies a partial update and returns the updated user.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// GetUserRoles returns the role names derived from the user's profiles.
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}
