package currency

import (
	"context"
	"testing"
	"time"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	mcore "github.com/auctionhub/currency-service/mocks/port/core"
	mmsg "github.com/auctionhub/currency-service/mocks/port/messaging"
	mpers "github.com/auctionhub/currency-service/mocks/port/persistence"
	"github.com/stretchr/testify/mock"
)

type txCtxKey struct{}

type fixture struct {
	ctx          context.Context
	txCtx        context.Context
	now          time.Time
	uow          *mpers.MockUnitOfWork
	userRepo     *mpers.MockUserRepository
	currencyRepo *mpers.MockCurrencyRepository
	txRepo       *mpers.MockTransactionRepository
	timeProvider *mcore.MockTimeProvider
	logger       *mcore.MockLogger
	metrics      *mcore.MockMetricsRecorder
	publisher    *mmsg.MockEventPublisher
	service      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:          context.Background(),
		now:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		uow:          mpers.NewMockUnitOfWork(t),
		userRepo:     mpers.NewMockUserRepository(t),
		currencyRepo: mpers.NewMockCurrencyRepository(t),
		txRepo:       mpers.NewMockTransactionRepository(t),
		timeProvider: mcore.NewMockTimeProvider(t),
		logger:       mcore.NewMockLogger(t).AllowAll(),
		metrics:      mcore.NewMockMetricsRecorder(t).AllowAll(),
		publisher:    mmsg.NewMockEventPublisher(t),
	}
	f.txCtx = context.WithValue(f.ctx, txCtxKey{}, "tx")

	f.timeProvider.On("Now").Return(f.now).Maybe()
	f.timeProvider.On("Since", mock.Anything).Return(coreport.Duration(time.Millisecond)).Maybe()

	f.uow.On("GetUserRepository", mock.Anything).Return(f.userRepo).Maybe()
	f.uow.On("GetCurrencyRepository", mock.Anything).Return(f.currencyRepo).Maybe()
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.txRepo).Maybe()

	f.service = NewCurrencyService(f.uow, f.timeProvider, f.logger, f.metrics, f.publisher, DefaultConfig())
	t.Cleanup(f.service.Shutdown)

	return f
}

// expectUnitOfWork wires Begin and either Commit or Rollback on the transactional context
func (f *fixture) expectUnitOfWork(commit bool) {
	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
	}
}
