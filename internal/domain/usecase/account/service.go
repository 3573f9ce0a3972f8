package account

import (
	"context"
	"fmt"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// Password limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything longer
)

// DefaultSweepBatchSize is how many expired suspensions are lifted per unit of work
const DefaultSweepBatchSize = 100

// Service implements usecase.AccountUseCase
type Service struct {
	uow            persistence.UnitOfWork
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
	hasher         coreport.PasswordHasher
	maxPageSize    int
	sweepBatchSize int

	createdHooks []usecase.UserCreatedHook
	savedHooks   []usecase.UserSavedHook
}

var _ usecase.AccountUseCase = (*Service)(nil)

// NewAccountService creates a new account service
func NewAccountService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	hasher coreport.PasswordHasher,
	maxPageSize int,
) *Service {
	return &Service{
		uow:            uow,
		timeProvider:   timeProvider,
		logger:         logger,
		hasher:         hasher,
		maxPageSize:    maxPageSize,
		sweepBatchSize: DefaultSweepBatchSize,
	}
}

// OnUserCreated registers a hook that runs inside every registration
func (s *Service) OnUserCreated(hook usecase.UserCreatedHook) {
	s.createdHooks = append(s.createdHooks, hook)
}

// OnUserSaved registers a hook that runs whenever an existing user is saved
func (s *Service) OnUserSaved(hook usecase.UserSavedHook) {
	s.savedHooks = append(s.savedHooks, hook)
}

// inTransaction runs fn in a unit of work, committing on success and rolling back otherwise
func (s *Service) inTransaction(ctx context.Context, operation string, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		s.logger.Error("Failed to begin transaction", map[string]any{
			"operation": operation,
			"error":     err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back transaction", map[string]any{
				"operation": operation,
				"error":     rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit transaction", map[string]any{
			"operation": operation,
			"error":     err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}
