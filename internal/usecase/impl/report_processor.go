package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/domain/service"
	"aevum/internal/infra/dnaparse"
	"aevum/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reportProcessor implements the ReportProcessorUsecase interface. It is the
// worker-side counterpart of UploadReportPDF.
type reportProcessor struct {
	txManager     repository.TransactionManager
	uploadRepo    repository.DNAUploadRepository
	deviceRepo    repository.DeviceRepository
	documentStore service.DocumentStore
	notification  service.NotificationService
	logger        *slog.Logger
}

// ReportProcessorParams holds dependencies for the report processor, injected by Fx.
type ReportProcessorParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UploadRepo    repository.DNAUploadRepository
	DeviceRepo    repository.DeviceRepository
	DocumentStore service.DocumentStore
	Notification  service.NotificationService
	Logger        *slog.Logger
}

// NewReportProcessor is the constructor for reportProcessor.
func NewReportProcessor(params ReportProcessorParams) usecase.ReportProcessorUsecase {
	return &reportProcessor{
		txManager:     params.TxManager,
		uploadRepo:    params.UploadRepo,
		deviceRepo:    params.DeviceRepo,
		documentStore: params.DocumentStore,
		notification:  params.Notification,
		logger:        params.Logger,
	}
}

func (srv *reportProcessor) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ProcessReportEvent runs the extraction pipeline for one uploaded PDF.
// Returned errors are retryable; permanent failures mark the upload FAILED
// and return nil so the message is acked.
func (srv *reportProcessor) ProcessReportEvent(ctx context.Context, event *service.ReportEvent) error {
	logger := srv.log(ctx).With(slog.Any("uploadID", event.UploadID), slog.Any("orderID", event.OrderID))
	logger.Info("Processing report event")

	upload, err := srv.uploadRepo.FindUploadByID(ctx, event.UploadID)
	if err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			// Nothing to process; ack so the message is not redelivered forever.
			logger.Warn("Upload record missing, dropping event")

			return nil
		}

		return errors.Wrap(err, "failed to load upload record")
	}

	// Redeliveries of already-processed uploads are acked silently.
	if upload.Status == entity.UploadStatusProcessed {
		logger.Debug("Upload already processed, skipping")

		return nil
	}

	data, err := srv.documentStore.Get(ctx, upload.BlobKey)
	if err != nil {
		// Storage hiccups are transient; let the queue redeliver.
		return errors.Wrap(err, "failed to load PDF from blob storage")
	}

	extraction, err := dnaparse.ExtractText(data)
	if err != nil {
		return srv.failUpload(ctx, upload, event, "no text could be extracted from the PDF")
	}

	parsed := dnaparse.ParseResults(extraction.Text, extraction.Confidence)
	if len(parsed.Results) == 0 {
		return srv.failUpload(ctx, upload, event, "no recognizable genetic results in the document")
	}

	report := buildReportEntity(event, upload, extraction, parsed)

	if err := srv.persistReport(ctx, report, upload); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			// A concurrent delivery won the race; its report stands.
			logger.Warn("Report already exists for order, dropping event")

			return nil
		}

		return errors.Wrap(err, "failed to persist report")
	}

	logger.Info("Report generated",
		slog.Int("results", len(report.Results)),
		slog.Float64("confidence", report.Confidence),
		slog.String("method", report.Method))

	srv.notifyReportReady(ctx, event)

	return nil
}

// failUpload marks the upload FAILED and the order FAILED. Parse failures
// are permanent, so a nil error is returned to ack the message.
func (srv *reportProcessor) failUpload(ctx context.Context, upload *entity.DNAReportUpload, event *service.ReportEvent, reason string) error {
	srv.log(ctx).Warn("Report processing failed permanently",
		slog.Any("uploadID", upload.ID), slog.String("reason", reason))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		upload.Status = entity.UploadStatusFailed
		upload.FailureReason = reason

		if err := repoFactory.UploadRepo().UpdateUpload(ctx, upload); err != nil {
			return errors.Wrap(err, "failed to mark upload failed")
		}

		order, err := repoFactory.OrderRepo().FindOrderByID(ctx, event.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for failure")
		}

		if order.Status.CanTransitionTo(entity.OrderStatusFailed) {
			order.Status = entity.OrderStatusFailed
			if err := repoFactory.OrderRepo().UpdateOrder(ctx, order); err != nil {
				return errors.Wrap(err, "failed to mark order failed")
			}
		}

		return nil
	})
	if err != nil {
		// Could not record the failure; retry the whole event.
		return errors.Wrap(err, "failed to execute failure transaction")
	}

	return nil
}

// persistReport stores the report, advances the order, and marks the upload
// processed in one transaction.
func (srv *reportProcessor) persistReport(ctx context.Context, report *entity.DNAReport, upload *entity.DNAReportUpload) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ReportRepo().CreateReport(ctx, report); err != nil {
			return err
		}

		order, err := repoFactory.OrderRepo().FindOrderByID(ctx, report.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for advancement")
		}

		if order.Status.CanTransitionTo(entity.OrderStatusResultsGenerated) {
			order.Status = entity.OrderStatusResultsGenerated
			if err := repoFactory.OrderRepo().UpdateOrder(ctx, order); err != nil {
				return errors.Wrap(err, "failed to advance order")
			}
		} else {
			srv.log(ctx).Warn("Order not in a processable status, leaving unchanged",
				slog.Any("orderID", order.ID), slog.String("status", order.Status.String()))
		}

		upload.Status = entity.UploadStatusProcessed
		upload.FailureReason = ""
		if err := repoFactory.UploadRepo().UpdateUpload(ctx, upload); err != nil {
			return errors.Wrap(err, "failed to mark upload processed")
		}

		return nil
	})
}

// notifyReportReady pushes a "report ready" notification to the member's
// active devices. Best effort; failures only log.
func (srv *reportProcessor) notifyReportReady(ctx context.Context, event *service.ReportEvent) {
	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, event.UserID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load devices for notification", slog.Any("userID", event.UserID), slog.Any("error", err))

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{
		"type":     "dna_report_ready",
		"order_id": event.OrderID.String(),
	}

	success, failure, invalid, err := srv.notification.SendBatchNotification(
		ctx, tokens, "Your DNA report is ready",
		"Open the app to explore your results.", data,
	)
	if err != nil {
		srv.log(ctx).Warn("Report-ready notification failed", slog.Any("userID", event.UserID), slog.Any("error", err))

		return
	}

	srv.log(ctx).Info("Report-ready notification sent",
		slog.Any("userID", event.UserID),
		slog.Int("success", success), slog.Int("failure", failure),
		slog.Int("invalidTokens", len(invalid)))
}

func buildReportEntity(event *service.ReportEvent, upload *entity.DNAReportUpload, extraction *dnaparse.Extraction, parsed *dnaparse.ParsedReport) *entity.DNAReport {
	results := make([]*entity.DNAResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, &entity.DNAResult{
			Trait:      r.Trait,
			Category:   r.Category,
			RSID:       r.RSID,
			Genotype:   r.Genotype,
			Outcome:    r.Outcome,
			RiskLevel:  r.RiskLevel,
			Percentile: r.Percentile,
			Confidence: r.Confidence,
		})
	}

	summary := parsed.Summary
	if summary == "" {
		summary = fmt.Sprintf("Report generated from %s.", upload.OriginalFilename)
	}

	return &entity.DNAReport{
		OrderID:     event.OrderID,
		UploadID:    upload.ID,
		Summary:     summary,
		Confidence:  parsed.Confidence,
		Method:      extraction.Method,
		GeneratedAt: time.Now(),
		Results:     results,
	}
}
