package postgres

import (
	"context"
	"time"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// subscriptionRepository implements the domain.SubscriptionRepository interface using GORM.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// ListPlans returns all active plans, cheapest first.
func (repo *subscriptionRepository) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	var planModels []*model.SubscriptionPlanModel

	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_cents ASC").
		Find(&planModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	plans := make([]*entity.SubscriptionPlan, 0, len(planModels))
	for _, planM := range planModels {
		plans = append(plans, toPlanDomain(planM))
	}

	return plans, nil
}

// FindPlanByID retrieves a single plan.
func (repo *subscriptionRepository) FindPlanByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	var planM model.SubscriptionPlanModel

	err := repo.db.WithContext(ctx).First(&planM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find plan by id")
	}

	return toPlanDomain(&planM), nil
}

// FindActiveByUser retrieves the user's currently accessible subscription
// (ACTIVE, or CANCELLED inside its paid period), with the plan preloaded.
func (repo *subscriptionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error) {
	var subM model.UserSubscriptionModel

	err := repo.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND (status = ? OR (status = ? AND current_period_end > ?))",
			userID, entity.SubscriptionActive, entity.SubscriptionCancelled, time.Now()).
		Order("created_at DESC").
		First(&subM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active subscription")
	}

	return toSubscriptionDomain(&subM), nil
}

// CreateSubscription persists a new subscription.
func (repo *subscriptionRepository) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	subM := fromSubscriptionDomain(sub)

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("user already has an active subscription")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrPlanNotFound.WrapMessage("invalid plan reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt
	sub.UpdatedAt = subM.UpdatedAt

	return nil
}

// UpdateSubscription persists status mutations on a subscription.
func (repo *subscriptionRepository) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	subM := fromSubscriptionDomain(sub)

	if err := repo.db.WithContext(ctx).Save(subM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update subscription")
	}

	sub.UpdatedAt = subM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toPlanDomain converts a GORM SubscriptionPlanModel to a domain entity.
func toPlanDomain(data *model.SubscriptionPlanModel) *entity.SubscriptionPlan {
	if data == nil {
		return nil
	}

	return &entity.SubscriptionPlan{
		ID:         data.ID,
		Code:       data.Code,
		Name:       data.Name,
		PriceCents: data.PriceCents,
		Interval:   data.Interval,
		Features:   data.Features,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
	}
}

// toSubscriptionDomain converts a GORM UserSubscriptionModel to a domain entity.
func toSubscriptionDomain(data *model.UserSubscriptionModel) *entity.UserSubscription {
	if data == nil {
		return nil
	}

	return &entity.UserSubscription{
		ID:                 data.ID,
		UserID:             data.UserID,
		PlanID:             data.PlanID,
		Plan:               toPlanDomain(data.Plan),
		Status:             entity.SubscriptionStatus(data.Status),
		CurrentPeriodStart: data.CurrentPeriodStart,
		CurrentPeriodEnd:   data.CurrentPeriodEnd,
		CancelledAt:        data.CancelledAt,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromSubscriptionDomain converts a domain entity to a GORM UserSubscriptionModel.
// The Plan association is deliberately not written back.
func fromSubscriptionDomain(data *entity.UserSubscription) *model.UserSubscriptionModel {
	if data == nil {
		return nil
	}

	return &model.UserSubscriptionModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		PlanID:             data.PlanID,
		Status:             string(data.Status),
		CurrentPeriodStart: data.CurrentPeriodStart,
		CurrentPeriodEnd:   data.CurrentPeriodEnd,
		CancelledAt:        data.CancelledAt,
		CreatedAt:          data.CreatedAt,
	}
}
