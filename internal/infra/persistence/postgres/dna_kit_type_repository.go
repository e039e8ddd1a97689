package postgres

import (
	"context"

	"aevum/internal/domain/entity"
	"aevum/internal/domain/repository"
	"aevum/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dnaKitTypeRepository implements the domain.DNAKitTypeRepository interface using GORM.
type dnaKitTypeRepository struct {
	db *gorm.DB
}

// NewDNAKitTypeRepository is the constructor for dnaKitTypeRepository.
func NewDNAKitTypeRepository(db *gorm.DB) repository.DNAKitTypeRepository {
	return &dnaKitTypeRepository{db: db}
}

// ListKitTypes returns active kit types matching the filter plus the total count.
func (repo *dnaKitTypeRepository) ListKitTypes(ctx context.Context, filter repository.KitTypeFilter) ([]*entity.DNAKitType, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.DNAKitTypeModel{}).
		Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	query = query.Order(kitTypeOrderClause(filter.Ordering))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var kitModels []*model.DNAKitTypeModel
	if err := query.Find(&kitModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	kitTypes := make([]*entity.DNAKitType, 0, len(kitModels))
	for _, kitM := range kitModels {
		kitTypes = append(kitTypes, toKitTypeDomain(kitM))
	}

	return kitTypes, total, nil
}

// FindKitTypeByID retrieves a single kit type.
func (repo *dnaKitTypeRepository) FindKitTypeByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitType, error) {
	var kitM model.DNAKitTypeModel

	err := repo.db.WithContext(ctx).First(&kitM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKitTypeNotFound
		}

		return nil, errors.Wrap(err, "failed to find kit type by id")
	}

	return toKitTypeDomain(&kitM), nil
}

// kitTypeOrderClause maps the API ordering token onto a SQL clause.
// Unknown tokens fall back to name ordering.
func kitTypeOrderClause(ordering string) string {
	switch ordering {
	case "price":
		return "price_cents ASC"
	case "-price":
		return "price_cents DESC"
	case "created_at":
		return "created_at ASC"
	case "-created_at":
		return "created_at DESC"
	default:
		return "name ASC"
	}
}

// --- Mapper Functions ---

// toKitTypeDomain converts a GORM DNAKitTypeModel to a domain DNAKitType entity.
func toKitTypeDomain(data *model.DNAKitTypeModel) *entity.DNAKitType {
	if data == nil {
		return nil
	}

	return &entity.DNAKitType{
		ID:          data.ID,
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		PriceCents:  data.PriceCents,
		TraitCount:  data.TraitCount,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
