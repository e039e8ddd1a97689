// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID         uuid.UUID    // The Global Unique Identifier (GUID) for the user.
	Email      string       // The user's primary contact email, used as the login identifier.
	Name       string       // The user's display name.
	Profile    *UserProfile // Health/wellness profile. Nil until the user completes onboarding.
	LabProfile *LabProfile  // Lab-operator profile. Nil unless the account belongs to lab staff.
	CreatedAt  time.Time    // Timestamp of when this user account was created.
	UpdatedAt  time.Time    // Timestamp of the last modification to this user's data.
}

// UserProfile holds the member-facing health profile shown and edited in the apps.
type UserProfile struct {
	UserID      uuid.UUID  // Foreign Key that links this profile to a core User entity.
	DateOfBirth *time.Time // Optional date of birth, used for age-dependent report content.
	Gender      string     // Self-reported gender, free-form.
	HeightCm    *float64   // Height in centimeters.
	WeightKg    *float64   // Weight in kilograms.
	Phone       string     // Contact phone number.
	AddressLine string     // Postal address line.
	City        string
	PostalCode  string
	Country     string

	// Lifestyle fields surfaced on the profile screen.
	ActivityLevel string // sedentary, light, moderate, active, athlete.
	SleepHours    *float64
	Smoker        *bool
	AlcoholUse    string // none, occasional, regular.
	DietaryStyle  string // omnivore, vegetarian, vegan, other.

	// Consents recorded at registration or later via the profile screen.
	ResearchConsent  bool // Consent to anonymized research use of genetic data.
	MarketingConsent bool // Consent to marketing communications.

	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}

// LabProfile holds data specific to lab-operator accounts that manage
// kit order fulfilment and sample processing.
type LabProfile struct {
	UserID    uuid.UUID // Foreign Key that links this profile to a core User entity.
	LabName   string    // The lab's display name.
	LabCode   string    // Short unique code identifying the lab facility.
	UpdatedAt time.Time
}
