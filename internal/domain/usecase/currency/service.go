package currency

import (
	"time"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
)

// DefaultChargeDescription is recorded when a charge carries no description
const DefaultChargeDescription = "수동 충전"

// Config tunes the ledger service
type Config struct {
	// QueueSize is the buffer of each per-user mutation queue
	QueueSize int
	// MaxPageSize caps page_size on history listings
	MaxPageSize int
	// MinChargeAmount is the smallest accepted manual charge
	MinChargeAmount decimal.Decimal
	// PublishTimeout bounds event publishing after commit
	PublishTimeout time.Duration
	// WorkerIdleTimeout retires an idle per-user worker; zero keeps workers until Shutdown
	WorkerIdleTimeout time.Duration
}

// DefaultConfig returns the service defaults
func DefaultConfig() Config {
	return Config{
		QueueSize:         100,
		MaxPageSize:       usecase.MaxPageSize,
		MinChargeAmount:   decimal.RequireFromString("0.01"),
		PublishTimeout:    2 * time.Second,
		WorkerIdleTimeout: 5 * time.Minute,
	}
}

// Service implements usecase.CurrencyUseCase
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
	publisher    msgport.EventPublisher
	config       Config

	queue       *MutationQueue
	validator   *MutationValidator
	idempotency *IdempotencyHandler
}

var _ usecase.CurrencyUseCase = (*Service)(nil)

// NewCurrencyService creates the ledger service and starts its mutation queue
func NewCurrencyService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	publisher msgport.EventPublisher,
	config Config,
) *Service {
	defaults := DefaultConfig()
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = defaults.MaxPageSize
	}
	if !config.MinChargeAmount.IsPositive() {
		config.MinChargeAmount = defaults.MinChargeAmount
	}
	if config.PublishTimeout <= 0 {
		config.PublishTimeout = defaults.PublishTimeout
	}

	s := &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		publisher:    publisher,
		config:       config,
		validator:    NewMutationValidator(),
		idempotency:  NewIdempotencyHandler(),
	}
	s.queue = NewMutationQueue(logger, metrics, config.QueueSize, config.WorkerIdleTimeout, s.processMutation)
	return s
}

// Shutdown drains the per-user queues
func (s *Service) Shutdown() {
	s.queue.Shutdown()
}
