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

// dnaUploadRepository implements the domain.DNAUploadRepository interface using GORM.
type dnaUploadRepository struct {
	db *gorm.DB
}

// NewDNAUploadRepository is the constructor for dnaUploadRepository.
func NewDNAUploadRepository(db *gorm.DB) repository.DNAUploadRepository {
	return &dnaUploadRepository{db: db}
}

// CreateUpload persists a new upload record.
func (repo *dnaUploadRepository) CreateUpload(ctx context.Context, upload *entity.DNAReportUpload) error {
	uploadM := fromUploadDomain(upload)

	if err := repo.db.WithContext(ctx).Create(uploadM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report upload")
	}

	upload.ID = uploadM.ID
	upload.CreatedAt = uploadM.CreatedAt
	upload.UpdatedAt = uploadM.UpdatedAt

	return nil
}

// FindUploadByID retrieves a single upload record.
func (repo *dnaUploadRepository) FindUploadByID(ctx context.Context, id uuid.UUID) (*entity.DNAReportUpload, error) {
	var uploadM model.DNAReportUploadModel

	err := repo.db.WithContext(ctx).First(&uploadM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUploadNotFound
		}

		return nil, errors.Wrap(err, "failed to find upload by id")
	}

	return toUploadDomain(&uploadM), nil
}

// UpdateUpload persists status mutations on an upload record.
func (repo *dnaUploadRepository) UpdateUpload(ctx context.Context, upload *entity.DNAReportUpload) error {
	uploadM := fromUploadDomain(upload)

	if err := repo.db.WithContext(ctx).Save(uploadM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update report upload")
	}

	upload.UpdatedAt = uploadM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toUploadDomain converts a GORM DNAReportUploadModel to a domain entity.
func toUploadDomain(data *model.DNAReportUploadModel) *entity.DNAReportUpload {
	if data == nil {
		return nil
	}

	return &entity.DNAReportUpload{
		ID:               data.ID,
		OrderID:          data.OrderID,
		BlobKey:          data.BlobKey,
		OriginalFilename: data.OriginalFilename,
		FileSize:         data.FileSize,
		Status:           data.Status,
		FailureReason:    data.FailureReason,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromUploadDomain converts a domain entity to a GORM DNAReportUploadModel.
func fromUploadDomain(data *entity.DNAReportUpload) *model.DNAReportUploadModel {
	if data == nil {
		return nil
	}

	return &model.DNAReportUploadModel{
		ID:               data.ID,
		OrderID:          data.OrderID,
		BlobKey:          data.BlobKey,
		OriginalFilename: data.OriginalFilename,
		FileSize:         data.FileSize,
		Status:           data.Status,
		FailureReason:    data.FailureReason,
		CreatedAt:        data.CreatedAt,
	}
}
