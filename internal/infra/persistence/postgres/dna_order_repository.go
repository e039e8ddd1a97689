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
)

// dnaOrderRepository implements the domain.DNAOrderRepository interface using GORM.
type dnaOrderRepository struct {
	db *gorm.DB
}

// NewDNAOrderRepository is the constructor for dnaOrderRepository.
func NewDNAOrderRepository(db *gorm.DB) repository.DNAOrderRepository {
	return &dnaOrderRepository{db: db}
}

// CreateOrder persists a new kit order.
func (repo *dnaOrderRepository) CreateOrder(ctx context.Context, order *entity.DNAKitOrder) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("kit code already registered")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrKitTypeNotFound.WrapMessage("invalid kit type reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create kit order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindOrderByID retrieves a single order with its kit type preloaded.
func (repo *dnaOrderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitOrder, error) {
	var orderM model.DNAKitOrderModel

	err := repo.db.WithContext(ctx).
		Preload("KitType").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrderByKitCode retrieves an order by the registration code on the kit.
func (repo *dnaOrderRepository) FindOrderByKitCode(ctx context.Context, kitCode string) (*entity.DNAKitOrder, error) {
	var orderM model.DNAKitOrderModel

	err := repo.db.WithContext(ctx).
		Preload("KitType").
		First(&orderM, "kit_code = ?", kitCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by kit code")
	}

	return toOrderDomain(&orderM), nil
}

// ListOrdersByUser returns a user's orders newest-first plus the total count.
func (repo *dnaOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.DNAKitOrder, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.DNAKitOrderModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	query = query.Preload("KitType").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var orderModels []*model.DNAKitOrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	orders := make([]*entity.DNAKitOrder, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// UpdateOrder persists status/tracking mutations on an order.
func (repo *dnaOrderRepository) UpdateOrder(ctx context.Context, order *entity.DNAKitOrder) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Save(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("kit code already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update kit order")
	}

	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// CountOrdersByUserAndStatus counts a user's orders per status.
func (repo *dnaOrderRepository) CountOrdersByUserAndStatus(ctx context.Context, userID uuid.UUID) (map[entity.OrderStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := repo.db.WithContext(ctx).
		Model(&model.DNAKitOrderModel{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM DNAKitOrderModel to a domain DNAKitOrder entity.
func toOrderDomain(data *model.DNAKitOrderModel) *entity.DNAKitOrder {
	if data == nil {
		return nil
	}

	return &entity.DNAKitOrder{
		ID:              data.ID,
		UserID:          data.UserID,
		KitTypeID:       data.KitTypeID,
		KitType:         toKitTypeDomain(data.KitType),
		KitCode:         data.KitCode,
		Status:          entity.OrderStatus(data.Status),
		PriceCents:      data.PriceCents,
		ShippingAddress: data.ShippingAddress,
		TrackingNumber:  data.TrackingNumber,
		Consented:       data.Consented,
		ConsentType:     data.ConsentType,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain DNAKitOrder entity to a GORM DNAKitOrderModel.
// The KitType association is deliberately not written back.
func fromOrderDomain(data *entity.DNAKitOrder) *model.DNAKitOrderModel {
	if data == nil {
		return nil
	}

	return &model.DNAKitOrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		KitTypeID:       data.KitTypeID,
		KitCode:         data.KitCode,
		Status:          data.Status.String(),
		PriceCents:      data.PriceCents,
		ShippingAddress: data.ShippingAddress,
		TrackingNumber:  data.TrackingNumber,
		Consented:       data.Consented,
		ConsentType:     data.ConsentType,
		CreatedAt:       data.CreatedAt,
	}
}
