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

// dnaReportRepository implements the domain.DNAReportRepository interface using GORM.
type dnaReportRepository struct {
	db *gorm.DB
}

// NewDNAReportRepository is the constructor for dnaReportRepository.
func NewDNAReportRepository(db *gorm.DB) repository.DNAReportRepository {
	return &dnaReportRepository{db: db}
}

// CreateReport persists a report together with its result rows.
func (repo *dnaReportRepository) CreateReport(ctx context.Context, report *entity.DNAReport) error {
	reportM := fromReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("report already exists for this order")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report")
	}

	report.ID = reportM.ID
	report.CreatedAt = reportM.CreatedAt
	for i, resultM := range reportM.Results {
		if i < len(report.Results) {
			report.Results[i].ID = resultM.ID
			report.Results[i].ReportID = resultM.ReportID
		}
	}

	return nil
}

// FindReportByOrderID retrieves the report for an order with results preloaded.
func (repo *dnaReportRepository) FindReportByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.DNAReport, error) {
	var reportM model.DNAReportModel

	err := repo.db.WithContext(ctx).
		Preload("Results").
		First(&reportM, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find report by order id")
	}

	return toReportDomain(&reportM), nil
}

// --- Mapper Functions ---

// toReportDomain converts a GORM DNAReportModel to a domain DNAReport entity.
func toReportDomain(data *model.DNAReportModel) *entity.DNAReport {
	if data == nil {
		return nil
	}

	results := make([]*entity.DNAResult, 0, len(data.Results))
	for _, resultM := range data.Results {
		results = append(results, toResultDomain(resultM))
	}

	return &entity.DNAReport{
		ID:          data.ID,
		OrderID:     data.OrderID,
		UploadID:    data.UploadID,
		Summary:     data.Summary,
		Confidence:  data.Confidence,
		Method:      data.Method,
		GeneratedAt: data.GeneratedAt,
		Results:     results,
		CreatedAt:   data.CreatedAt,
	}
}

// fromReportDomain converts a domain DNAReport entity to a GORM DNAReportModel.
func fromReportDomain(data *entity.DNAReport) *model.DNAReportModel {
	if data == nil {
		return nil
	}

	results := make([]*model.DNAResultModel, 0, len(data.Results))
	for _, result := range data.Results {
		results = append(results, &model.DNAResultModel{
			ID:         result.ID,
			Trait:      result.Trait,
			Category:   result.Category,
			RSID:       result.RSID,
			Genotype:   result.Genotype,
			Outcome:    result.Outcome,
			RiskLevel:  result.RiskLevel,
			Percentile: result.Percentile,
			Confidence: result.Confidence,
		})
	}

	return &model.DNAReportModel{
		ID:          data.ID,
		OrderID:     data.OrderID,
		UploadID:    data.UploadID,
		Summary:     data.Summary,
		Confidence:  data.Confidence,
		Method:      data.Method,
		GeneratedAt: data.GeneratedAt,
		Results:     results,
	}
}

// toResultDomain converts a GORM DNAResultModel to a domain DNAResult entity.
func toResultDomain(data *model.DNAResultModel) *entity.DNAResult {
	if data == nil {
		return nil
	}

	return &entity.DNAResult{
		ID:         data.ID,
		ReportID:   data.ReportID,
		Trait:      data.Trait,
		Category:   data.Category,
		RSID:       data.RSID,
		Genotype:   data.Genotype,
		Outcome:    data.Outcome,
		RiskLevel:  data.RiskLevel,
		Percentile: data.Percentile,
		Confidence: data.Confidence,
		CreatedAt:  data.CreatedAt,
	}
}
