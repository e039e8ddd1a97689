package impl

import (
	"context"
	"testing"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/domain/service"
	mockRepo "aevum/internal/mocks/repository"
	mockSvc "aevum/internal/mocks/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reportProcessorFixtures holds all test dependencies for processor tests.
type reportProcessorFixtures struct {
	processor     usecase.ReportProcessorUsecase
	orderRepo     *mockRepo.MockDNAOrderRepository
	uploadRepo    *mockRepo.MockDNAUploadRepository
	reportRepo    *mockRepo.MockDNAReportRepository
	deviceRepo    *mockRepo.MockDeviceRepository
	documentStore *mockSvc.MockDocumentStore
	notification  *mockSvc.MockNotificationService
}

func createTestReportProcessor(t *testing.T) reportProcessorFixtures {
	orderRepo := mockRepo.NewMockDNAOrderRepository(t)
	uploadRepo := mockRepo.NewMockDNAUploadRepository(t)
	reportRepo := mockRepo.NewMockDNAReportRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	documentStore := mockSvc.NewMockDocumentStore(t)
	notification := mockSvc.NewMockNotificationService(t)

	txManager := &mockRepo.PassthroughTxManager{Factory: &mockRepo.StubRepositoryFactory{
		Orders:  orderRepo,
		Uploads: uploadRepo,
		Reports: reportRepo,
	}}

	processor := NewReportProcessor(ReportProcessorParams{
		TxManager:     txManager,
		UploadRepo:    uploadRepo,
		DeviceRepo:    deviceRepo,
		DocumentStore: documentStore,
		Notification:  notification,
		Logger:        newDiscardLogger(),
	})

	return reportProcessorFixtures{
		processor:     processor,
		orderRepo:     orderRepo,
		uploadRepo:    uploadRepo,
		reportRepo:    reportRepo,
		deviceRepo:    deviceRepo,
		documentStore: documentStore,
		notification:  notification,
	}
}

func testReportEvent() *service.ReportEvent {
	return &service.ReportEvent{
		RequestID: uuid.NewString(),
		UploadID:  uuid.New(),
		OrderID:   uuid.New(),
		UserID:    uuid.New(),
		BlobKey:   "reports/test/upload.pdf",
		Filename:  "lab-report.pdf",
	}
}

// reportText is plain text the extractor and parser both recognize.
var reportText = []byte(
	"Genetic Analysis Report\n" +
		"Trait: Caffeine metabolism rs762551 Genotype A/A Outcome: fast metabolizer\n" +
		"Trait: Lactose tolerance rs4988235 Genotype A/G Outcome: likely tolerant\n",
)

func TestReportProcessor_MissingUploadIsAcked(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).
		Return(nil, repository.ErrUploadNotFound)

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
}

func TestReportProcessor_AlreadyProcessedIsAcked(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).
		Return(&entity.DNAReportUpload{
			ID:      event.UploadID,
			OrderID: event.OrderID,
			Status:  entity.UploadStatusProcessed,
		}, nil)

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
	fx.documentStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReportProcessor_StorageErrorIsRetryable(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).
		Return(&entity.DNAReportUpload{
			ID:      event.UploadID,
			OrderID: event.OrderID,
			BlobKey: event.BlobKey,
			Status:  entity.UploadStatusUploaded,
		}, nil)
	fx.documentStore.On("Get", ctx, event.BlobKey).
		Return(nil, errors.New("bucket unavailable"))

	err := fx.processor.ProcessReportEvent(ctx, event)

	assert.Error(t, err)
}

func TestReportProcessor_UnreadableDocumentFailsPermanently(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()
	upload := &entity.DNAReportUpload{
		ID:      event.UploadID,
		OrderID: event.OrderID,
		BlobKey: event.BlobKey,
		Status:  entity.UploadStatusUploaded,
	}

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).Return(upload, nil)
	// Too little recoverable text for any extraction method.
	fx.documentStore.On("Get", ctx, event.BlobKey).Return([]byte{0x00, 0x01, 0x02}, nil)

	fx.uploadRepo.On("UpdateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*entity.DNAReportUpload)
			assert.Equal(t, entity.UploadStatusFailed, updated.Status)
			assert.NotEmpty(t, updated.FailureReason)
		}).
		Return(nil)
	fx.orderRepo.On("FindOrderByID", ctx, event.OrderID).
		Return(&entity.DNAKitOrder{ID: event.OrderID, UserID: event.UserID, Status: entity.OrderStatusProcessing}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.DNAKitOrder)
			assert.Equal(t, entity.OrderStatusFailed, order.Status)
		}).
		Return(nil)

	// Permanent failures are acked, not retried.
	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
}

func TestReportProcessor_NoResultsFailsPermanently(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()
	upload := &entity.DNAReportUpload{
		ID:      event.UploadID,
		OrderID: event.OrderID,
		BlobKey: event.BlobKey,
		Status:  entity.UploadStatusUploaded,
	}

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).Return(upload, nil)
	// Readable text with no recognizable genetic markers.
	fx.documentStore.On("Get", ctx, event.BlobKey).
		Return([]byte("This invoice covers shipping and handling for your recent purchase."), nil)

	fx.uploadRepo.On("UpdateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).Return(nil)
	fx.orderRepo.On("FindOrderByID", ctx, event.OrderID).
		Return(&entity.DNAKitOrder{ID: event.OrderID, UserID: event.UserID, Status: entity.OrderStatusProcessing}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).Return(nil)

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, entity.UploadStatusFailed, upload.Status)
}

func TestReportProcessor_DuplicateReportIsAcked(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()
	upload := &entity.DNAReportUpload{
		ID:      event.UploadID,
		OrderID: event.OrderID,
		BlobKey: event.BlobKey,
		Status:  entity.UploadStatusUploaded,
	}

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).Return(upload, nil)
	fx.documentStore.On("Get", ctx, event.BlobKey).Return(reportText, nil)
	// A concurrent delivery already stored a report for this order.
	fx.reportRepo.On("CreateReport", ctx, mock.AnythingOfType("*entity.DNAReport")).
		Return(domainerrors.ErrConflict)

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
}

func TestReportProcessor_Success(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()
	upload := &entity.DNAReportUpload{
		ID:               event.UploadID,
		OrderID:          event.OrderID,
		BlobKey:          event.BlobKey,
		OriginalFilename: event.Filename,
		Status:           entity.UploadStatusUploaded,
	}

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).Return(upload, nil)
	fx.documentStore.On("Get", ctx, event.BlobKey).Return(reportText, nil)

	fx.reportRepo.On("CreateReport", ctx, mock.AnythingOfType("*entity.DNAReport")).
		Run(func(args mock.Arguments) {
			report := args.Get(1).(*entity.DNAReport)
			assert.Equal(t, event.OrderID, report.OrderID)
			assert.Equal(t, event.UploadID, report.UploadID)
			assert.Len(t, report.Results, 2)
			assert.Greater(t, report.Confidence, 0.0)
		}).
		Return(nil)
	fx.orderRepo.On("FindOrderByID", ctx, event.OrderID).
		Return(&entity.DNAKitOrder{ID: event.OrderID, UserID: event.UserID, Status: entity.OrderStatusProcessing}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.DNAKitOrder)
			assert.Equal(t, entity.OrderStatusResultsGenerated, order.Status)
		}).
		Return(nil)
	fx.uploadRepo.On("UpdateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).Return(nil)

	fx.deviceRepo.On("FindActiveDevicesByUser", ctx, event.UserID).
		Return([]*entity.UserDevice{
			{UserID: event.UserID, DeviceID: "device-1", FCMToken: "token-1", IsActive: true},
		}, nil)
	fx.notification.On("SendBatchNotification", ctx, []string{"token-1"},
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Return(1, 0, nil, nil)

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, entity.UploadStatusProcessed, upload.Status)
}

func TestReportProcessor_NotificationFailureDoesNotFailEvent(t *testing.T) {
	fx := createTestReportProcessor(t)

	ctx := context.Background()
	event := testReportEvent()
	upload := &entity.DNAReportUpload{
		ID:      event.UploadID,
		OrderID: event.OrderID,
		BlobKey: event.BlobKey,
		Status:  entity.UploadStatusUploaded,
	}

	fx.uploadRepo.On("FindUploadByID", ctx, event.UploadID).Return(upload, nil)
	fx.documentStore.On("Get", ctx, event.BlobKey).Return(reportText, nil)
	fx.reportRepo.On("CreateReport", ctx, mock.AnythingOfType("*entity.DNAReport")).Return(nil)
	fx.orderRepo.On("FindOrderByID", ctx, event.OrderID).
		Return(&entity.DNAKitOrder{ID: event.OrderID, UserID: event.UserID, Status: entity.OrderStatusProcessing}, nil)
	fx.orderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("*entity.DNAKitOrder")).Return(nil)
	fx.uploadRepo.On("UpdateUpload", ctx, mock.AnythingOfType("*entity.DNAReportUpload")).Return(nil)

	fx.deviceRepo.On("FindActiveDevicesByUser", ctx, event.UserID).
		Return(nil, errors.New("replica down"))

	err := fx.processor.ProcessReportEvent(ctx, event)

	require.NoError(t, err)
}
