package currency

import (
	"context"
	"errors"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
)

// GetCurrency returns the user's ledger, creating an empty one on first access.
// Concurrent first calls converge on a single row.
func (s *Service) GetCurrency(ctx context.Context, userID uint64) (*entity.Currency, bool, error) {
	if userID == 0 {
		return nil, false, errs.ErrInvalidUserID
	}

	ledger, created, err := s.uow.GetCurrencyRepository(ctx).GetOrCreate(ctx, userID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Failed to load ledger", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, false, err
	}

	if created {
		s.metrics.RecordLedgerCreated()
		s.logger.Info("Created ledger on first access", map[string]any{"user_id": userID})
	}

	return ledger, created, nil
}

// ProvisionLedger is registered as a user-created hook. ctx carries the
// registration transaction, so a failure here rolls back the new user.
func (s *Service) ProvisionLedger(ctx context.Context, user *entity.User) error {
	_, created, err := s.uow.GetCurrencyRepository(ctx).GetOrCreate(ctx, user.ID, s.timeProvider.Now())
	if err != nil {
		return err
	}
	if created {
		s.metrics.RecordLedgerCreated()
	}
	s.logger.Debug("Provisioned ledger for new user", map[string]any{
		"user_id": user.ID,
		"created": created,
	})
	return nil
}

// TouchLedger is registered as a user-saved hook; it makes sure the ledger
// exists and moves its updated_at along with the user. Balances are written
// by the mutation path only.
func (s *Service) TouchLedger(ctx context.Context, user *entity.User) error {
	now := s.timeProvider.Now()
	repo := s.uow.GetCurrencyRepository(ctx)

	err := repo.Touch(ctx, user.ID, now)
	if !errors.Is(err, errs.ErrCurrencyNotFound) {
		return err
	}

	_, created, err := repo.GetOrCreate(ctx, user.ID, now)
	if err != nil {
		return err
	}
	if created {
		s.metrics.RecordLedgerCreated()
	}
	return nil
}
