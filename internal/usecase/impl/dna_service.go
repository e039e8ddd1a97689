package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aevum/config"
	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/domain/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	kitCodePrefix     = "AEV"
	kitCodeAttempts   = 3
	defaultMaxUpload  = 10 << 20
	pdfContentType    = "application/pdf"
	recentOrdersLimit = 5
)

// dnaService implements the DNAUsecase interface.
type dnaService struct {
	txManager      repository.TransactionManager
	kitTypeRepo    repository.DNAKitTypeRepository
	orderRepo      repository.DNAOrderRepository
	uploadRepo     repository.DNAUploadRepository
	reportRepo     repository.DNAReportRepository
	documentStore  service.DocumentStore
	eventPublisher service.EventPublisher
	qrService      service.QRCodeService
	mailer         service.Mailer
	maxUploadBytes int64
	logger         *slog.Logger
}

// DNAServiceParams holds dependencies for DNAService, injected by Fx.
type DNAServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	KitTypeRepo    repository.DNAKitTypeRepository
	OrderRepo      repository.DNAOrderRepository
	UploadRepo     repository.DNAUploadRepository
	ReportRepo     repository.DNAReportRepository
	DocumentStore  service.DocumentStore
	EventPublisher service.EventPublisher
	QRService      service.QRCodeService
	Mailer         service.Mailer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewDNAService is the constructor for dnaService.
func NewDNAService(params DNAServiceParams) usecase.DNAUsecase {
	maxUploadBytes := int64(defaultMaxUpload)
	if params.Config != nil && params.Config.Documents != nil && params.Config.Documents.MaxUploadBytes > 0 {
		maxUploadBytes = params.Config.Documents.MaxUploadBytes
	}

	return &dnaService{
		txManager:      params.TxManager,
		kitTypeRepo:    params.KitTypeRepo,
		orderRepo:      params.OrderRepo,
		uploadRepo:     params.UploadRepo,
		reportRepo:     params.ReportRepo,
		documentStore:  params.DocumentStore,
		eventPublisher: params.EventPublisher,
		qrService:      params.QRService,
		mailer:         params.Mailer,
		maxUploadBytes: maxUploadBytes,
		logger:         params.Logger,
	}
}

func (srv *dnaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListKitTypes returns the active kit catalog.
func (srv *dnaService) ListKitTypes(ctx context.Context, input *usecase.ListKitTypesInput) (*usecase.KitTypeListOutput, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)

	filter := repository.KitTypeFilter{
		Category: input.Category,
		Search:   input.Search,
		Ordering: input.Ordering,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	kitTypes, total, err := srv.kitTypeRepo.ListKitTypes(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list kit types")
	}

	return &usecase.KitTypeListOutput{
		KitTypes: kitTypes,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetKitType retrieves a single catalog entry.
func (srv *dnaService) GetKitType(ctx context.Context, id uuid.UUID) (*entity.DNAKitType, error) {
	kitType, err := srv.kitTypeRepo.FindKitTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrKitTypeNotFound) {
			return nil, domainerrors.ErrKitTypeNotFound.WrapMessage("kit type not found")
		}

		return nil, errors.Wrap(err, "failed to find kit type")
	}

	return kitType, nil
}

// CreateOrder places a kit order for the user.
func (srv *dnaService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.DNAKitOrder, error) {
	if !input.Consented {
		return nil, domainerrors.ErrConsentRequired.WrapMessage("consent is required to place a kit order")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("shipping_address is required")
	}

	kitType, err := srv.kitTypeRepo.FindKitTypeByID(ctx, input.KitTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrKitTypeNotFound) {
			return nil, domainerrors.ErrKitTypeNotFound.WrapMessage("kit type not found")
		}

		return nil, errors.Wrap(err, "failed to load kit type for order")
	}
	if !kitType.IsActive {
		return nil, domainerrors.ErrKitTypeNotFound.WrapMessage("kit type is no longer available")
	}

	order := &entity.DNAKitOrder{
		UserID:          userID,
		KitTypeID:       kitType.ID,
		Status:          entity.OrderStatusPending,
		PriceCents:      kitType.PriceCents, // Price snapshot at order time.
		ShippingAddress: input.ShippingAddress,
		Consented:       input.Consented,
		ConsentType:     input.ConsentType,
	}

	// Kit codes are random; retry a couple of times on the unlikely collision.
	var createErr error
	for attempt := 0; attempt < kitCodeAttempts; attempt++ {
		order.KitCode = generateKitCode()

		createErr = srv.orderRepo.CreateOrder(ctx, order)
		if createErr == nil {
			break
		}
		if !errors.Is(createErr, domainerrors.ErrConflict) {
			break
		}
	}
	if createErr != nil {
		srv.log(ctx).Error("Failed to create kit order", slog.Any("userID", userID), slog.Any("error", createErr))

		return nil, errors.Wrap(createErr, "failed to create kit order")
	}

	order.KitType = kitType

	srv.sendOrderConfirmation(ctx, userID, order, kitType)

	srv.log(ctx).Info("Kit order created", slog.Any("userID", userID), slog.Any("orderID", order.ID), slog.String("kitCode", order.KitCode))

	return order, nil
}

// sendOrderConfirmation emails the member a confirmation; failures only log.
func (srv *dnaService) sendOrderConfirmation(ctx context.Context, userID uuid.UUID, order *entity.DNAKitOrder, kitType *entity.DNAKitType) {
	user, err := srv.loadOrderOwner(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}

	subject := "Your Aevum DNA kit order"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour order for %q is confirmed.\nKit code: %s\nTotal: %.2f\n\nRegister the kit with its code once it arrives.",
		user.Name, kitType.Name, order.KitCode, float64(order.PriceCents)/100,
	)

	if err := srv.mailer.Send(ctx, user.Email, subject, body); err != nil {
		srv.log(ctx).Warn("Order confirmation mail failed", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

func (srv *dnaService) loadOrderOwner(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var owner *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find order owner")
		}
		owner = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return owner, nil
}

// ListOrders returns the user's orders, newest first.
func (srv *dnaService) ListOrders(ctx context.Context, userID uuid.UUID, input *usecase.ListOrdersInput) (*usecase.OrderListOutput, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)

	orders, total, err := srv.orderRepo.ListOrdersByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderListOutput{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetOrder retrieves one of the user's orders.
func (srv *dnaService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAKitOrder, error) {
	return srv.loadOwnedOrder(ctx, userID, orderID)
}

// loadOwnedOrder loads an order and hides other users' orders behind 404.
func (srv *dnaService) loadOwnedOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAKitOrder, error) {
	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != userID {
		srv.log(ctx).Warn("Cross-user order access blocked", slog.Any("userID", userID), slog.Any("orderID", orderID))

		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
	}

	return order, nil
}

// CancelOrder cancels an order still in PENDING or CONFIRMED.
func (srv *dnaService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAKitOrder, error) {
	var cancelled *entity.DNAKitOrder

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
			}

			return errors.Wrap(err, "failed to find order for cancellation")
		}
		if order.UserID != userID {
			return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
			return domainerrors.ErrOrderTransitionInvalid.WithDetails(
				fmt.Sprintf("order in status %s cannot be cancelled", order.Status),
			)
		}

		order.Status = entity.OrderStatusCancelled
		if err := orderRepo.UpdateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to cancel order")
		}

		cancelled = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute order cancellation transaction")
	}

	srv.log(ctx).Info("Order cancelled", slog.Any("userID", userID), slog.Any("orderID", orderID))

	return cancelled, nil
}

// GenerateKitQR renders the order's kit registration code as a PNG QR code.
func (srv *dnaService) GenerateKitQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePNG(order.KitCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render kit QR code")
	}

	return png, nil
}

// UpdateOrderStatus applies a lab-side status transition.
func (srv *dnaService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.DNAKitOrder, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
	}

	var updated *entity.DNAKitOrder

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
			}

			return errors.Wrap(err, "failed to find order for status update")
		}

		if !order.Status.CanTransitionTo(input.Status) {
			return domainerrors.ErrOrderTransitionInvalid.WithDetails(
				fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status),
			)
		}

		order.Status = input.Status
		if input.TrackingNumber != "" {
			order.TrackingNumber = input.TrackingNumber
		}

		if err := orderRepo.UpdateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", orderID), slog.String("status", updated.Status.String()))

	return updated, nil
}

// UploadReportPDF validates and stores a raw report PDF, records the upload,
// and publishes a processing event.
func (srv *dnaService) UploadReportPDF(ctx context.Context, input *usecase.UploadReportInput) (*usecase.UploadReportOutput, error) {
	if len(input.Data) == 0 {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("uploaded file is empty")
	}
	if int64(len(input.Data)) > srv.maxUploadBytes {
		return nil, domainerrors.ErrUploadInvalid.WithDetails(
			fmt.Sprintf("file exceeds the %d byte limit", srv.maxUploadBytes),
		)
	}
	if !isPDFUpload(input.Filename, input.ContentType) {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("only PDF files are accepted")
	}

	order, err := srv.orderRepo.FindOrderByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to find order for upload")
	}

	upload := &entity.DNAReportUpload{
		OrderID:          order.ID,
		BlobKey:          fmt.Sprintf("reports/%s/%s.pdf", order.ID, uuid.New()),
		OriginalFilename: input.Filename,
		FileSize:         int64(len(input.Data)),
		Status:           entity.UploadStatusUploaded,
	}

	if err := srv.documentStore.Put(ctx, upload.BlobKey, input.Data, pdfContentType); err != nil {
		return nil, errors.Wrap(err, "failed to store uploaded PDF")
	}

	if err := srv.uploadRepo.CreateUpload(ctx, upload); err != nil {
		// Keep the bucket consistent with the database.
		if delErr := srv.documentStore.Delete(ctx, upload.BlobKey); delErr != nil {
			srv.log(ctx).Warn("Failed to delete orphaned blob", slog.String("blobKey", upload.BlobKey), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to record upload")
	}

	event := &service.ReportEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		UploadID:   upload.ID,
		OrderID:    order.ID,
		UserID:     order.UserID,
		BlobKey:    upload.BlobKey,
		Filename:   upload.OriginalFilename,
		UploadedAt: upload.CreatedAt,
	}

	if err := srv.eventPublisher.PublishReportEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish report event", slog.Any("uploadID", upload.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to publish report event")
	}

	srv.log(ctx).Info("Report PDF uploaded", slog.Any("orderID", order.ID), slog.Any("uploadID", upload.ID), slog.Int64("size", upload.FileSize))

	return &usecase.UploadReportOutput{
		UploadID:         upload.ID,
		Status:           upload.Status,
		FileURL:          "/files/" + upload.BlobKey,
		OriginalFilename: upload.OriginalFilename,
		FileSize:         upload.FileSize,
	}, nil
}

// GetReport returns the parsed report once the order's results are visible.
func (srv *dnaService) GetReport(ctx context.Context, userID, orderID uuid.UUID) (*entity.DNAReport, error) {
	order, err := srv.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.ReportVisible() {
		return nil, domainerrors.ErrReportNotReady.WithDetails(
			fmt.Sprintf("order is in status %s", order.Status),
		)
	}

	report, err := srv.reportRepo.FindReportByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, domainerrors.ErrReportNotReady.WrapMessage("report not generated yet")
		}

		return nil, errors.Wrap(err, "failed to find report")
	}

	return report, nil
}

// GetDashboard aggregates the user's order counts and recent orders.
func (srv *dnaService) GetDashboard(ctx context.Context, userID uuid.UUID) (*usecase.DNADashboardOutput, error) {
	counts, err := srv.orderRepo.CountOrdersByUserAndStatus(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	recent, _, err := srv.orderRepo.ListOrdersByUser(ctx, userID, recentOrdersLimit, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	return &usecase.DNADashboardOutput{
		TotalOrders:  total,
		StatusCounts: counts,
		ReportsReady: counts[entity.OrderStatusResultsGenerated] + counts[entity.OrderStatusCompleted],
		RecentOrders: recent,
	}, nil
}

// generateKitCode produces a registration code like "AEV-5F3A9C01D2".
func generateKitCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))

	return kitCodePrefix + "-" + raw[:10]
}

func isPDFUpload(filename, contentType string) bool {
	if strings.EqualFold(contentType, pdfContentType) {
		return true
	}

	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
