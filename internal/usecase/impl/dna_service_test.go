package impl

import (
	"context"
	"strings"
	"testing"

	"aevum/config"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	mockRepo "aevum/internal/mocks/repository"
	mockSvc "aevum/internal/mocks/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dnaServiceFixtures holds all test dependencies for DNA service tests.
type dnaServiceFixtures struct {
	service        usecase.DNAUsecase
	userRepo       *mockRepo.MockUserRepository
	kitTypeRepo    *mockRepo.MockDNAKitTypeRepository
	orderRepo      *mockRepo.MockDNAOrderRepository
	uploadRepo     *mockRepo.MockDNAUploadRepository
	reportRepo     *mockRepo.MockDNAReportRepository
	documentStore  *mockSvc.MockDocumentStore
	eventPublisher *mockSvc.MockEventPublisher
	qrService      *mockSvc.MockQRCodeService
	mailer         *mockSvc.MockMailer
}

func createTestDNAService(t *testing.T, maxUploadBytes int64) dnaServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	kitTypeRepo := mockRepo.NewMockDNAKitTypeRepository(t)
	orderRepo := mockRepo.NewMockDNAOrderRepository(t)
	uploadRepo := mockRepo.NewMockDNAUploadRepository(t)
	reportRepo := mockRepo.NewMockDNAReportRepository(t)
	documentStore := mockSvc.NewMockDocumentStore(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	qrService := mockSvc.NewMockQRCodeService(t)
	mailer := mockSvc.NewMockMailer(t)

	txManager := &mockRepo.PassthroughTxManager{Factory: &mockRepo.StubRepositoryFactory{
		Users:   userRepo,
		Orders:  orderRepo,
		Uploads: uploadRepo,
		Reports: reportRepo,
	}}

	cfg := newTestConfig(0)
	if maxUploadBytes > 0 {
		cfg.Documents = &config.DocumentsConfig{MaxUploadBytes: maxUploadBytes}
	}

	svc := NewDNAService(DNAServiceParams{
		TxManager:      txManager,
		KitTypeRepo:    kitTypeRepo,
		OrderRepo:      orderRepo,
		UploadRepo:     uploadRepo,
		ReportRepo:     reportRepo,
		DocumentStore:  documentStore,
		EventPublisher: eventPublisher,
		QRService:      qrService,
		Mailer:         mailer,
		Config:         cfg,
		Logger:         newDiscardLogger(),
	})

	return dnaServiceFixtures{
		service:        svc,
		userRepo:       userRepo,
		kitTypeRepo:    kitTypeRepo,
		orderRepo:      orderRepo,
		uploadRepo:     uploadRepo,
		reportRepo:     reportRepo,
		documentStore:  documentStore,
		eventPublisher: eventPublisher,
		qrService:      qrService,
		mailer:         mailer,
	}
}

func activeKitType() *entity.DNAKitType {
	return &entity.DNAKitType{
		ID:         uuid.New(),
		Name:       "Ancestry + Traits",
		Category:   "ancestry",
		PriceCents: 14900,
		TraitCount: 45,
		IsActive:   true,
	}
}

func TestDNAService_ListKitTypes_NormalizesPaging(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()

	fx.kitTypeRepo.On("ListKitTypes", ctx, repository.KitTypeFilter{
		Category: "health",
		Limit:    100,
		Offset:   0,
	}).Return([]*entity.DNAKitType{activeKitType()}, int64(1), nil)

	output, err := fx.service.ListKitTypes(ctx, &usecase.ListKitTypesInput{
		Category: "health",
		Page:     0,
		PageSize: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 100, output.PageSize)
	assert.Equal(t, int64(1), output.Total)
}

func TestDNAService_CreateOrder_ConsentRequired(t *testing.T) {
	fx := createTestDNAService(t, 0)

	output, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		KitTypeID:       uuid.New(),
		ShippingAddress: "1 Health Way",
		Consented:       false,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrConsentRequired)
}

func TestDNAService_CreateOrder_MissingAddress(t *testing.T) {
	fx := createTestDNAService(t, 0)

	output, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		KitTypeID:       uuid.New(),
		ShippingAddress: "   ",
		Consented:       true,
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDNAService_CreateOrder_InactiveKitType(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	kitType := activeKitType()
	kitType.IsActive = false

	fx.kitTypeRepo.On("FindKitTypeByID", ctx, kitType.ID).Return(kitType, nil)

	output, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		KitTypeID:       kitType.ID,
		ShippingAddress: "1 Health Way",
		Consented:       true,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrKitTypeNotFound)
}

func TestDNAService_CreateOrder_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	kitType := activeKitType()

	fx.kitTypeRepo.On("FindKitTypeByID", ctx, kitType.ID).Return(kitType, nil)
	fx.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.DNAKitOrder)
			order.ID = uuid.New()
		}).
		Return(nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Test User", Email: "test@example.com"}, nil)
	fx.mailer.On("Send", ctx, "test@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		KitTypeID:       kitType.ID,
		ShippingAddress: "1 Health Way",
		Consented:       true,
		ConsentType:     "full",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, kitType.PriceCents, order.PriceCents)
	assert.True(t, strings.HasPrefix(order.KitCode, "AEV-"))
	assert.Equal(t, kitType, order.KitType)
}

func TestDNAService_CreateOrder_RetriesKitCodeCollision(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	kitType := activeKitType()

	fx.kitTypeRepo.On("FindKitTypeByID", ctx, kitType.ID).Return(kitType, nil)
	fx.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).
		Return(domainerrors.ErrConflict).Twice()
	fx.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.DNAKitOrder)
			order.ID = uuid.New()
		}).
		Return(nil).Once()
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Test User", Email: "test@example.com"}, nil)
	fx.mailer.On("Send", ctx, "test@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		KitTypeID:       kitType.ID,
		ShippingAddress: "1 Health Way",
		Consented:       true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.KitCode)
}

func TestDNAService_GetOrder_CrossUserHidden(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}, nil)

	order, err := fx.service.GetOrder(ctx, uuid.New(), orderID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestDNAService_CancelOrder_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, Status: entity.OrderStatusPending}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).Return(nil)

	order, err := fx.service.CancelOrder(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestDNAService_CancelOrder_IllegalAfterShipping(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, Status: entity.OrderStatusShipped}, nil)

	order, err := fx.service.CancelOrder(ctx, userID, orderID)

	assert.Nil(t, order)
	requireErrorCode(t, err, "ORDER_TRANSITION_INVALID")
	fx.orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
}

func TestDNAService_GenerateKitQR_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, KitCode: "AEV-5F3A9C01D2", Status: entity.OrderStatusConfirmed}, nil)
	fx.qrService.On("GeneratePNG", "AEV-5F3A9C01D2").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := fx.service.GenerateKitQR(ctx, userID, orderID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDNAService_UpdateOrderStatus_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusConfirmed}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, orderID, &usecase.UpdateOrderStatusInput{
		Status:         entity.OrderStatusShipped,
		TrackingNumber: "TRACK-001",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
	assert.Equal(t, "TRACK-001", order.TrackingNumber)
}

func TestDNAService_UpdateOrderStatus_IllegalTransition(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}, nil)

	order, err := fx.service.UpdateOrderStatus(ctx, orderID, &usecase.UpdateOrderStatusInput{
		Status: entity.OrderStatusResultsGenerated,
	})

	assert.Nil(t, order)
	requireErrorCode(t, err, "ORDER_TRANSITION_INVALID")
}

func TestDNAService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestDNAService(t, 0)

	order, err := fx.service.UpdateOrderStatus(context.Background(), uuid.New(), &usecase.UpdateOrderStatusInput{
		Status: entity.OrderStatus("TELEPORTED"),
	})

	assert.Nil(t, order)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDNAService_UploadReportPDF_RejectsEmptyFile(t *testing.T) {
	fx := createTestDNAService(t, 0)

	output, err := fx.service.UploadReportPDF(context.Background(), &usecase.UploadReportInput{
		OrderID:  uuid.New(),
		Filename: "report.pdf",
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "UPLOAD_INVALID")
}

func TestDNAService_UploadReportPDF_RejectsOversizedFile(t *testing.T) {
	fx := createTestDNAService(t, 16)

	output, err := fx.service.UploadReportPDF(context.Background(), &usecase.UploadReportInput{
		OrderID:     uuid.New(),
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Data:        make([]byte, 17),
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "UPLOAD_INVALID")
}

func TestDNAService_UploadReportPDF_RejectsNonPDF(t *testing.T) {
	fx := createTestDNAService(t, 0)

	output, err := fx.service.UploadReportPDF(context.Background(), &usecase.UploadReportInput{
		OrderID:     uuid.New(),
		Filename:    "results.csv",
		ContentType: "text/csv",
		Data:        []byte("rsid,genotype"),
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "UPLOAD_INVALID")
}

func TestDNAService_UploadReportPDF_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	orderID := uuid.New()
	userID := uuid.New()
	data := []byte("%PDF-1.4 test report body")

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, Status: entity.OrderStatusProcessing}, nil)
	fx.documentStore.On("Put", ctx, mock.AnythingOfType("string"), data, "application/pdf").
		Return(nil)
	fx.uploadRepo.On("CreateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).
		Run(func(args mock.Arguments) {
			upload := args.Get(1).(*entity.DNAReportUpload)
			upload.ID = uuid.New()
		}).
		Return(nil)
	fx.eventPublisher.On("PublishReportEvent", ctx, mock.AnythingOfType("*service.ReportEvent")).
		Return(nil)

	output, err := fx.service.UploadReportPDF(ctx, &usecase.UploadReportInput{
		OrderID:     orderID,
		Filename:    "lab-report.pdf",
		ContentType: "application/pdf",
		Data:        data,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, output.UploadID)
	assert.Equal(t, entity.UploadStatusUploaded, output.Status)
	assert.Equal(t, "lab-report.pdf", output.OriginalFilename)
	assert.Equal(t, int64(len(data)), output.FileSize)
	assert.True(t, strings.HasPrefix(output.FileURL, "/files/reports/"))
}

func TestDNAService_UploadReportPDF_RecordFailureCleansBlob(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	orderID := uuid.New()
	data := []byte("%PDF-1.4 test report body")

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusProcessing}, nil)
	fx.documentStore.On("Put", ctx, mock.AnythingOfType("string"), data, "application/pdf").
		Return(nil)
	fx.uploadRepo.On("CreateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).
		Return(errors.New("db down"))
	fx.documentStore.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	output, err := fx.service.UploadReportPDF(ctx, &usecase.UploadReportInput{
		OrderID:     orderID,
		Filename:    "lab-report.pdf",
		ContentType: "application/pdf",
		Data:        data,
	})

	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestDNAService_GetReport_NotReadyBeforeResults(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, Status: entity.OrderStatusProcessing}, nil)

	report, err := fx.service.GetReport(ctx, userID, orderID)

	assert.Nil(t, report)
	requireErrorCode(t, err, "REPORT_NOT_READY")
	fx.reportRepo.AssertNotCalled(t, "FindReportByOrderID", mock.Anything, mock.Anything)
}

func TestDNAService_GetReport_Success(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.DNAKitOrder{ID: orderID, UserID: userID, Status: entity.OrderStatusResultsGenerated}, nil)
	fx.reportRepo.On("FindReportByOrderID", ctx, orderID).
		Return(&entity.DNAReport{ID: uuid.New(), OrderID: orderID, Summary: "Identified 3 genetic results across 2 categories."}, nil)

	report, err := fx.service.GetReport(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, orderID, report.OrderID)
}

func TestDNAService_GetDashboard_AggregatesCounts(t *testing.T) {
	fx := createTestDNAService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fx.orderRepo.On("CountOrdersByUserAndStatus", ctx, userID).
		Return(map[entity.OrderStatus]int64{
			entity.OrderStatusPending:          1,
			entity.OrderStatusResultsGenerated: 2,
			entity.OrderStatusCompleted:        1,
		}, nil)
	fx.orderRepo.On("ListOrdersByUser", ctx, userID, 5, 0).
		Return([]*entity.DNAKitOrder{{ID: uuid.New(), UserID: userID}}, int64(4), nil)

	output, err := fx.service.GetDashboard(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), output.TotalOrders)
	assert.Equal(t, int64(3), output.ReportsReady)
	assert.Len(t, output.RecentOrders, 1)
}
