package currency

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// ApplyMutation validates the request and runs it through the caller's per-user queue
func (s *Service) ApplyMutation(ctx context.Context, req usecase.MutationRequest) (*usecase.MutationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn("Rejected invalid mutation", map[string]any{
			"user_id": req.UserID,
			"type":    string(req.Type),
			"amount":  req.Amount.String(),
			"error":   err.Error(),
		})
		s.metrics.RecordMutation(string(req.Type), coreport.OutcomeRejected, 0)
		return nil, err
	}
	req.Amount = entity.NormalizeAmount(req.Amount)

	return s.queue.Enqueue(ctx, req)
}

// processMutation is the queue worker body: one unit of work per mutation
func (s *Service) processMutation(ctx context.Context, req usecase.MutationRequest) (result *usecase.MutationResult, err error) {
	start := s.timeProvider.Now()
	defer func() {
		outcome := coreport.OutcomeSuccess
		switch {
		case err != nil && (errs.IsValidationError(err) || errs.IsInsufficientBalanceError(err) || errors.Is(err, errs.ErrDuplicateTransaction)):
			outcome = coreport.OutcomeRejected
		case err != nil:
			outcome = coreport.OutcomeFailed
		case result != nil && result.Replayed:
			outcome = coreport.OutcomeReplayed
		}
		s.metrics.RecordMutation(string(req.Type), outcome, s.timeProvider.Since(start).Std())
	}()

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		s.logger.Error("Failed to begin mutation", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back mutation", map[string]any{
				"user_id": req.UserID,
				"error":   rbErr.Error(),
			})
		}
	}()

	now := s.timeProvider.Now()
	currencyRepo := s.uow.GetCurrencyRepository(txCtx)
	txRepo := s.uow.GetTransactionRepository(txCtx)

	ledger, created, err := currencyRepo.GetOrCreateForUpdate(txCtx, req.UserID, now)
	if err != nil {
		return nil, errs.NewMutationError(req.UserID, string(req.Type), req.Amount.String(), "failed to lock ledger", err)
	}
	if created {
		s.metrics.RecordLedgerCreated()
	}

	existing, found, err := s.idempotency.CheckIdempotency(txCtx, txRepo, req)
	if err != nil {
		return nil, err
	}
	if found {
		s.logger.Info("Replaying mutation for reused idempotency key", map[string]any{
			"user_id":         req.UserID,
			"transaction_id":  existing.ID,
			"idempotency_key": req.IdempotencyKey,
		})
		if err := s.uow.Commit(txCtx); err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		committed = true
		return &usecase.MutationResult{Currency: ledger, Transaction: existing, Replayed: true}, nil
	}

	transition, err := ledger.Apply(req.Type, req.Amount, now)
	if err != nil {
		s.logger.Warn("Mutation rejected by ledger rules", map[string]any{
			"user_id": req.UserID,
			"type":    string(req.Type),
			"amount":  entity.FormatAmount(req.Amount),
			"balance": entity.FormatAmount(ledger.Balance),
			"locked":  entity.FormatAmount(ledger.LockedBalance),
			"error":   err.Error(),
		})
		return nil, err
	}

	if err := currencyRepo.Update(txCtx, ledger); err != nil {
		return nil, errs.NewMutationError(req.UserID, string(req.Type), req.Amount.String(), "failed to update ledger", err)
	}

	record, err := entity.NewCurrencyTransaction(req.UserID, req.Type, req.Amount, transition, entity.TransactionDetails{
		Description:    req.Description,
		ReferenceID:    req.ReferenceID,
		IdempotencyKey: req.IdempotencyKey,
		IPAddress:      req.IPAddress,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := txRepo.Create(txCtx, record); err != nil {
		return nil, errs.NewMutationError(req.UserID, string(req.Type), req.Amount.String(), "failed to record transaction", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit mutation", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return nil, errs.NewMutationError(req.UserID, string(req.Type), req.Amount.String(), "failed to commit", err)
	}
	committed = true

	s.logger.Info("Mutation applied", map[string]any{
		"user_id":        req.UserID,
		"transaction_id": record.ID,
		"type":           string(req.Type),
		"amount":         entity.FormatAmount(record.Amount),
		"balance_before": entity.FormatAmount(transition.BalanceBefore),
		"balance_after":  entity.FormatAmount(transition.BalanceAfter),
		"locked_after":   entity.FormatAmount(transition.LockedBalanceAfter),
	})

	s.publishTransactionCreated(ctx, record)

	return &usecase.MutationResult{Currency: ledger, Transaction: record}, nil
}
