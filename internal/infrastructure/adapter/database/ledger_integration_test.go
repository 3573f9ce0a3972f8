package database_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/auctionhub/currency-service/internal/domain/usecase/account"
	"github.com/auctionhub/currency-service/internal/domain/usecase/currency"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database/dbtest"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/messaging"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/metrics"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/security"
	timeprovider "github.com/auctionhub/currency-service/internal/infrastructure/adapter/time"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type ledgerStack struct {
	manager  *database.Manager
	uow      persistence.UnitOfWork
	accounts *account.Service
	currency *currency.Service
}

func newLedgerStack(t *testing.T) *ledgerStack {
	t.Helper()

	log := logger.NewNoopLogger()
	tp := timeprovider.NewRealTimeProvider()

	manager := database.NewManager(database.SQLiteMemoryConfig(), log, tp, nil)
	_, err := manager.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })
	require.NoError(t, manager.Migrate(context.Background()))

	uow := manager.CreateUnitOfWork()
	currencySvc := currency.NewCurrencyService(uow, tp, log,
		metrics.NewPrometheusMetrics(prometheus.NewRegistry()),
		messaging.NewNoopPublisher(log),
		currency.DefaultConfig())
	t.Cleanup(currencySvc.Shutdown)

	accountSvc := account.NewAccountService(uow, tp, log, security.NewBcryptHasher(bcrypt.MinCost), usecase.MaxPageSize)
	accountSvc.OnUserCreated(currencySvc.ProvisionLedger)
	accountSvc.OnUserSaved(currencySvc.TouchLedger)

	return &ledgerStack{manager: manager, uow: uow, accounts: accountSvc, currency: currencySvc}
}

func (s *ledgerStack) register(t *testing.T, username string) *entity.User {
	t.Helper()

	acct, err := s.accounts.Register(context.Background(), usecase.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return acct.User
}

func TestLedger_RegistrationProvisionsEmptyLedger(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()

	acct, err := stack.accounts.Register(ctx, usecase.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, acct.Currency)
	assert.Equal(t, "0.00", entity.FormatAmount(acct.Currency.Balance))
	assert.Equal(t, entity.DefaultReputationScore, acct.Profile.ReputationScore)

	ledger, created, err := stack.currency.GetCurrency(ctx, acct.User.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "0.00", entity.FormatAmount(ledger.TotalBalance()))

	_, err = stack.accounts.Register(ctx, usecase.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateUser)
}

func TestLedger_ChargeThenBid(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	user := stack.register(t, "bidder")

	charged, err := stack.currency.Charge(ctx, usecase.ChargeRequest{UserID: user.ID, Amount: "10000"})
	require.NoError(t, err)
	assert.Equal(t, "10000.00", entity.FormatAmount(charged.Currency.Balance))
	assert.Equal(t, currency.DefaultChargeDescription, charged.Transaction.Description)

	bid, err := stack.currency.ApplyMutation(ctx, usecase.MutationRequest{
		UserID:      user.ID,
		Type:        entity.TypeBid,
		Amount:      decimal.NewFromInt(-500),
		ReferenceID: "auction-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "9500.00", entity.FormatAmount(bid.Currency.Balance))
	assert.Equal(t, "500.00", entity.FormatAmount(bid.Currency.LockedBalance))
	assert.Equal(t, "10000.00", entity.FormatAmount(bid.Currency.TotalBalance()))
	assert.Equal(t, "10000.00", entity.FormatAmount(bid.Transaction.BalanceBefore))
	assert.Equal(t, "9500.00", entity.FormatAmount(bid.Transaction.BalanceAfter))

	_, err = stack.currency.ApplyMutation(ctx, usecase.MutationRequest{
		UserID: user.ID,
		Type:   entity.TypeFee,
		Amount: decimal.NewFromInt(-9501),
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

	page, err := stack.currency.ListTransactions(ctx, usecase.TransactionFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Count)
	assert.Equal(t, entity.TypeBid, page.Items[0].Type)
	assert.Equal(t, entity.TypeCharge, page.Items[1].Type)

	ledger, _, err := stack.currency.GetCurrency(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "9500.00", entity.FormatAmount(ledger.Balance))
	assert.Equal(t, "10000.00", entity.FormatAmount(ledger.TotalEarned))
}

func TestLedger_IdempotentCharge(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	user := stack.register(t, "retrier")

	req := usecase.ChargeRequest{UserID: user.ID, Amount: "250.00", IdempotencyKey: "topup-1"}
	first, err := stack.currency.Charge(ctx, req)
	require.NoError(t, err)

	second, err := stack.currency.Charge(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Transaction.ID, second.Transaction.ID)
	assert.Equal(t, "250.00", entity.FormatAmount(second.Currency.Balance))

	req.Amount = "300.00"
	_, err = stack.currency.Charge(ctx, req)
	assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)
}

func TestLedger_ConcurrentChargesAreSerialized(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	user := stack.register(t, "busy")

	const charges = 20
	var wg sync.WaitGroup
	errCh := make(chan error, charges)
	for i := 0; i < charges; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stack.currency.Charge(ctx, usecase.ChargeRequest{UserID: user.ID, Amount: "10.25"})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	ledger, _, err := stack.currency.GetCurrency(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "205.00", entity.FormatAmount(ledger.Balance))

	page, err := stack.currency.ListTransactions(ctx, usecase.TransactionFilter{UserID: user.ID, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(charges), page.Count)
}

func TestLedger_SuspendedUserCannotCharge(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	user := stack.register(t, "naughty")

	_, err := stack.accounts.Suspend(ctx, user.ID, nil)
	require.NoError(t, err)

	_, err = stack.currency.Charge(ctx, usecase.ChargeRequest{UserID: user.ID, Amount: "100"})
	assert.ErrorIs(t, err, errs.ErrUserSuspended)

	_, err = stack.accounts.Unsuspend(ctx, user.ID)
	require.NoError(t, err)
	_, err = stack.currency.Charge(ctx, usecase.ChargeRequest{UserID: user.ID, Amount: "100"})
	assert.NoError(t, err)
}

// interleavingUnitOfWork hands out ledger repositories that run between once,
// after a read returns and before the next write starts
type interleavingUnitOfWork struct {
	persistence.UnitOfWork
	between func()
	once    *sync.Once
}

func (u interleavingUnitOfWork) GetCurrencyRepository(ctx context.Context) persistence.CurrencyRepository {
	return interleavingCurrencyRepository{
		CurrencyRepository: u.UnitOfWork.GetCurrencyRepository(ctx),
		between:            func() { u.once.Do(u.between) },
	}
}

type interleavingCurrencyRepository struct {
	persistence.CurrencyRepository
	between func()
}

func (r interleavingCurrencyRepository) GetOrCreate(ctx context.Context, userID uint64, now time.Time) (*entity.Currency, bool, error) {
	ledger, created, err := r.CurrencyRepository.GetOrCreate(ctx, userID, now)
	r.between()
	return ledger, created, err
}

func (r interleavingCurrencyRepository) Touch(ctx context.Context, userID uint64, now time.Time) error {
	r.between()
	return r.CurrencyRepository.Touch(ctx, userID, now)
}

func (r interleavingCurrencyRepository) Update(ctx context.Context, currency *entity.Currency) error {
	r.between()
	return r.CurrencyRepository.Update(ctx, currency)
}

func TestLedger_TouchKeepsConcurrentCharge(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	user := stack.register(t, "toucher")

	var charged *usecase.MutationResult
	uow := interleavingUnitOfWork{
		UnitOfWork: stack.uow,
		once:       &sync.Once{},
		between: func() {
			var err error
			charged, err = stack.currency.Charge(ctx, usecase.ChargeRequest{UserID: user.ID, Amount: "10000"})
			require.NoError(t, err)
		},
	}
	log := logger.NewNoopLogger()
	toucher := currency.NewCurrencyService(uow, timeprovider.NewRealTimeProvider(), log,
		metrics.NewPrometheusMetrics(prometheus.NewRegistry()),
		messaging.NewNoopPublisher(log),
		currency.DefaultConfig())
	t.Cleanup(toucher.Shutdown)

	require.NoError(t, toucher.TouchLedger(ctx, user))
	require.NotNil(t, charged)

	ledger, _, err := stack.currency.GetCurrency(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", entity.FormatAmount(ledger.Balance))
	assert.Equal(t, "10000.00", entity.FormatAmount(ledger.TotalEarned))
	assert.True(t, ledger.Balance.Equal(charged.Transaction.BalanceAfter))
}

func TestLedger_ConcurrentFirstAccessCreatesOneLedger(t *testing.T) {
	stack := newLedgerStack(t)
	ctx := context.Background()
	db := stack.manager.DB()
	user := dbtest.CreateTestUser(t, db, "latecomer")

	const callers = 16
	var (
		wg      sync.WaitGroup
		created atomic.Int32
		ids     sync.Map
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger, wasCreated, err := stack.currency.GetCurrency(ctx, user.ID)
			if !assert.NoError(t, err) {
				return
			}
			if wasCreated {
				created.Add(1)
			}
			ids.Store(ledger.ID, true)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())

	distinct := 0
	ids.Range(func(_, _ any) bool {
		distinct++
		return true
	})
	assert.Equal(t, 1, distinct)

	var count int64
	require.NoError(t, db.Model(&model.Currency{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
