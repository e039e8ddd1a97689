// Package repository provides hand-written testify mocks for the
// persistence interfaces, used by the use case tests.
package repository

import (
	"context"
	"testing"

	"aevum/internal/domain/entity"
	"aevum/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- UserRepository ---

type MockUserRepository struct{ mock.Mock }

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) AcquireSessionMutex(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// --- AuthRepository ---

type MockAuthRepository struct{ mock.Mock }

func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	auth, _ := args.Get(0).(*entity.Authentication)

	return auth, args.Error(1)
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, authID uuid.UUID, passwordHash string) error {
	return m.Called(ctx, authID, passwordHash).Error(0)
}

// --- RefreshTokenRepository ---

type MockRefreshTokenRepository struct{ mock.Mock }

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*entity.RefreshToken)

	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	args := m.Called(ctx, id)
	token, _ := args.Get(0).(*entity.RefreshToken)

	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) FindRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]*entity.RefreshToken)

	return tokens, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshToken(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRefreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

// --- DeviceRepository ---

type MockDeviceRepository struct{ mock.Mock }

func NewMockDeviceRepository(t *testing.T) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDeviceRepository) UpsertDevice(ctx context.Context, device *entity.UserDevice) error {
	return m.Called(ctx, device).Error(0)
}

func (m *MockDeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	devices, _ := args.Get(0).([]*entity.UserDevice)

	return devices, args.Error(1)
}

func (m *MockDeviceRepository) DeactivateDevice(ctx context.Context, userID uuid.UUID, deviceID string) error {
	return m.Called(ctx, userID, deviceID).Error(0)
}

// --- DNAKitTypeRepository ---

type MockDNAKitTypeRepository struct{ mock.Mock }

func NewMockDNAKitTypeRepository(t *testing.T) *MockDNAKitTypeRepository {
	m := &MockDNAKitTypeRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDNAKitTypeRepository) ListKitTypes(ctx context.Context, filter repository.KitTypeFilter) ([]*entity.DNAKitType, int64, error) {
	args := m.Called(ctx, filter)
	kitTypes, _ := args.Get(0).([]*entity.DNAKitType)

	return kitTypes, args.Get(1).(int64), args.Error(2)
}

func (m *MockDNAKitTypeRepository) FindKitTypeByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitType, error) {
	args := m.Called(ctx, id)
	kitType, _ := args.Get(0).(*entity.DNAKitType)

	return kitType, args.Error(1)
}

// --- DNAOrderRepository ---

type MockDNAOrderRepository struct{ mock.Mock }

func NewMockDNAOrderRepository(t *testing.T) *MockDNAOrderRepository {
	m := &MockDNAOrderRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDNAOrderRepository) CreateOrder(ctx context.Context, order *entity.DNAKitOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockDNAOrderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.DNAKitOrder, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.DNAKitOrder)

	return order, args.Error(1)
}

func (m *MockDNAOrderRepository) FindOrderByKitCode(ctx context.Context, kitCode string) (*entity.DNAKitOrder, error) {
	args := m.Called(ctx, kitCode)
	order, _ := args.Get(0).(*entity.DNAKitOrder)

	return order, args.Error(1)
}

func (m *MockDNAOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.DNAKitOrder, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	orders, _ := args.Get(0).([]*entity.DNAKitOrder)

	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *MockDNAOrderRepository) UpdateOrder(ctx context.Context, order *entity.DNAKitOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockDNAOrderRepository) CountOrdersByUserAndStatus(ctx context.Context, userID uuid.UUID) (map[entity.OrderStatus]int64, error) {
	args := m.Called(ctx, userID)
	counts, _ := args.Get(0).(map[entity.OrderStatus]int64)

	return counts, args.Error(1)
}

// --- DNAUploadRepository ---

type MockDNAUploadRepository struct{ mock.Mock }

func NewMockDNAUploadRepository(t *testing.T) *MockDNAUploadRepository {
	m := &MockDNAUploadRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDNAUploadRepository) CreateUpload(ctx context.Context, upload *entity.DNAReportUpload) error {
	return m.Called(ctx, upload).Error(0)
}

func (m *MockDNAUploadRepository) FindUploadByID(ctx context.Context, id uuid.UUID) (*entity.DNAReportUpload, error) {
	args := m.Called(ctx, id)
	upload, _ := args.Get(0).(*entity.DNAReportUpload)

	return upload, args.Error(1)
}

func (m *MockDNAUploadRepository) UpdateUpload(ctx context.Context, upload *entity.DNAReportUpload) error {
	return m.Called(ctx, upload).Error(0)
}

// --- DNAReportRepository ---

type MockDNAReportRepository struct{ mock.Mock }

func NewMockDNAReportRepository(t *testing.T) *MockDNAReportRepository {
	m := &MockDNAReportRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDNAReportRepository) CreateReport(ctx context.Context, report *entity.DNAReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockDNAReportRepository) FindReportByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.DNAReport, error) {
	args := m.Called(ctx, orderID)
	report, _ := args.Get(0).(*entity.DNAReport)

	return report, args.Error(1)
}

// --- JournalRepository ---

type MockJournalRepository struct{ mock.Mock }

func NewMockJournalRepository(t *testing.T) *MockJournalRepository {
	m := &MockJournalRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry *entity.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*entity.JournalEntry)

	return entry, args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByUser(ctx context.Context, userID uuid.UUID, filter repository.JournalEntryFilter) ([]*entity.JournalEntry, int64, error) {
	args := m.Called(ctx, userID, filter)
	entries, _ := args.Get(0).([]*entity.JournalEntry)

	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry *entity.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJournalRepository) ListEntryDatesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	dates, _ := args.Get(0).([]string)

	return dates, args.Error(1)
}

func (m *MockJournalRepository) CreateReminder(ctx context.Context, reminder *entity.JournalReminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *MockJournalRepository) ListRemindersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JournalReminder, error) {
	args := m.Called(ctx, userID)
	reminders, _ := args.Get(0).([]*entity.JournalReminder)

	return reminders, args.Error(1)
}

func (m *MockJournalRepository) FindReminderByID(ctx context.Context, id uuid.UUID) (*entity.JournalReminder, error) {
	args := m.Called(ctx, id)
	reminder, _ := args.Get(0).(*entity.JournalReminder)

	return reminder, args.Error(1)
}

func (m *MockJournalRepository) UpdateReminder(ctx context.Context, reminder *entity.JournalReminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *MockJournalRepository) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// --- CompanionRepository ---

type MockCompanionRepository struct{ mock.Mock }

func NewMockCompanionRepository(t *testing.T) *MockCompanionRepository {
	m := &MockCompanionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCompanionRepository) CreateThread(ctx context.Context, thread *entity.CompanionThread) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockCompanionRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error) {
	args := m.Called(ctx, id)
	thread, _ := args.Get(0).(*entity.CompanionThread)

	return thread, args.Error(1)
}

func (m *MockCompanionRepository) FindThreadWithMessages(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error) {
	args := m.Called(ctx, id)
	thread, _ := args.Get(0).(*entity.CompanionThread)

	return thread, args.Error(1)
}

func (m *MockCompanionRepository) ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CompanionThread, error) {
	args := m.Called(ctx, userID)
	threads, _ := args.Get(0).([]*entity.CompanionThread)

	return threads, args.Error(1)
}

func (m *MockCompanionRepository) DeleteThread(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompanionRepository) AppendMessage(ctx context.Context, message *entity.CompanionMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockCompanionRepository) ListRecentMessages(ctx context.Context, threadID uuid.UUID, n int) ([]*entity.CompanionMessage, error) {
	args := m.Called(ctx, threadID, n)
	messages, _ := args.Get(0).([]*entity.CompanionMessage)

	return messages, args.Error(1)
}

// --- SubscriptionRepository ---

type MockSubscriptionRepository struct{ mock.Mock }

func NewMockSubscriptionRepository(t *testing.T) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubscriptionRepository) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]*entity.SubscriptionPlan)

	return plans, args.Error(1)
}

func (m *MockSubscriptionRepository) FindPlanByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*entity.SubscriptionPlan)

	return plan, args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error) {
	args := m.Called(ctx, userID)
	sub, _ := args.Get(0).(*entity.UserSubscription)

	return sub, args.Error(1)
}

func (m *MockSubscriptionRepository) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	return m.Called(ctx, sub).Error(0)
}
