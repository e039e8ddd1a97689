package repository

import (
	"context"

	"aevum/internal/domain/repository"
)

// StubRepositoryFactory hands out the configured repositories as if they
// were bound to a transaction.
type StubRepositoryFactory struct {
	Users         repository.UserRepository
	Auths         repository.AuthRepository
	RefreshTokens repository.RefreshTokenRepository
	Orders        repository.DNAOrderRepository
	Uploads       repository.DNAUploadRepository
	Reports       repository.DNAReportRepository
	Subscriptions repository.SubscriptionRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *StubRepositoryFactory) AuthRepo() repository.AuthRepository { return f.Auths }

func (f *StubRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}

func (f *StubRepositoryFactory) OrderRepo() repository.DNAOrderRepository { return f.Orders }

func (f *StubRepositoryFactory) UploadRepo() repository.DNAUploadRepository { return f.Uploads }

func (f *StubRepositoryFactory) ReportRepo() repository.DNAReportRepository { return f.Reports }

func (f *StubRepositoryFactory) SubscriptionRepo() repository.SubscriptionRepository {
	return f.Subscriptions
}

// PassthroughTxManager runs the transactional function directly against
// the stub factory, without a real database transaction.
type PassthroughTxManager struct {
	Factory repository.RepositoryFactory
}

func (m *PassthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
