// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their associated profiles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Preload("UserProfile").
		Preload("LabProfile").
		First(&userM, "id = ?", id).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading profiles.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Preload("UserProfile").
		Preload("LabProfile").
		First(&userM, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including its associated profiles.
// GORM's Create with associations inserts into users, user_profiles,
// and/or lab_profiles within a single statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.Profile != nil && userM.UserProfile != nil {
		user.Profile.UserID = userM.UserProfile.UserID
		user.Profile.UpdatedAt = userM.UserProfile.UpdatedAt
	}
	if user.LabProfile != nil && userM.LabProfile != nil {
		user.LabProfile.UserID = userM.LabProfile.UserID
		user.LabProfile.UpdatedAt = userM.LabProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing user entity, including its associated profiles.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	// FullSaveAssociations updates the nested profile rows as well.
	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(userM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt
	if user.Profile != nil && userM.UserProfile != nil {
		user.Profile.UpdatedAt = userM.UserProfile.UpdatedAt
	}
	if user.LabProfile != nil && userM.LabProfile != nil {
		user.LabProfile.UpdatedAt = userM.LabProfile.UpdatedAt
	}

	return nil
}

// AcquireSessionMutex locks the user row for the duration of the current
// transaction, serializing concurrent session-limit checks.
func (repo *userRepository) AcquireSessionMutex(ctx context.Context, id uuid.UUID) error {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&userM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to lock user row")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:         data.ID,
		Email:      data.Email,
		Name:       data.Name,
		Profile:    toUserProfileDomain(data.UserProfile),
		LabProfile: toLabProfileDomain(data.LabProfile),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:          data.ID,
		Email:       data.Email,
		Name:        data.Name,
		UserProfile: fromUserProfileDomain(data.Profile),
		LabProfile:  fromLabProfileDomain(data.LabProfile),
	}
}

// toUserProfileDomain converts a GORM UserProfileModel to a domain UserProfile entity.
func toUserProfileDomain(data *model.UserProfileModel) *entity.UserProfile {
	if data == nil {
		return nil
	}

	return &entity.UserProfile{
		UserID:           data.UserID,
		DateOfBirth:      data.DateOfBirth,
		Gender:           data.Gender,
		HeightCm:         data.HeightCm,
		WeightKg:         data.WeightKg,
		Phone:            data.Phone,
		AddressLine:      data.AddressLine,
		City:             data.City,
		PostalCode:       data.PostalCode,
		Country:          data.Country,
		ActivityLevel:    data.ActivityLevel,
		SleepHours:       data.SleepHours,
		Smoker:           data.Smoker,
		AlcoholUse:       data.AlcoholUse,
		DietaryStyle:     data.DietaryStyle,
		ResearchConsent:  data.ResearchConsent,
		MarketingConsent: data.MarketingConsent,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromUserProfileDomain converts a domain UserProfile entity to a GORM UserProfileModel.
func fromUserProfileDomain(data *entity.UserProfile) *model.UserProfileModel {
	if data == nil {
		return nil
	}

	return &model.UserProfileModel{
		UserID:           data.UserID,
		DateOfBirth:      data.DateOfBirth,
		Gender:           data.Gender,
		HeightCm:         data.HeightCm,
		WeightKg:         data.WeightKg,
		Phone:            data.Phone,
		AddressLine:      data.AddressLine,
		City:             data.City,
		PostalCode:       data.PostalCode,
		Country:          data.Country,
		ActivityLevel:    data.ActivityLevel,
		SleepHours:       data.SleepHours,
		Smoker:           data.Smoker,
		AlcoholUse:       data.AlcoholUse,
		DietaryStyle:     data.DietaryStyle,
		ResearchConsent:  data.ResearchConsent,
		MarketingConsent: data.MarketingConsent,
		UpdatedAt:        data.UpdatedAt,
	}
}

// toLabProfileDomain converts a GORM LabProfileModel to a domain LabProfile entity.
func toLabProfileDomain(data *model.LabProfileModel) *entity.LabProfile {
	if data == nil {
		return nil
	}

	return &entity.LabProfile{
		UserID:    data.UserID,
		LabName:   data.LabName,
		LabCode:   data.LabCode,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromLabProfileDomain converts a domain LabProfile entity to a GORM LabProfileModel.
func fromLabProfileDomain(data *entity.LabProfile) *model.LabProfileModel {
	if data == nil {
		return nil
	}

	return &model.LabProfileModel{
		UserID:    data.UserID,
		LabName:   data.LabName,
		LabCode:   data.LabCode,
		UpdatedAt: data.UpdatedAt,
	}
}
