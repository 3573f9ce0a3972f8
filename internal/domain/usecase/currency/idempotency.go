package currency

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// IdempotencyHandler resolves client supplied idempotency keys
type IdempotencyHandler struct{}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler() *IdempotencyHandler {
	return &IdempotencyHandler{}
}

// CheckIdempotency looks up an earlier row written with the request's key.
// It must run after the ledger row is locked so that concurrent retries see each other.
// A key reused with a different type or amount is ErrDuplicateTransaction.
func (h *IdempotencyHandler) CheckIdempotency(
	ctx context.Context,
	txRepo persistence.TransactionRepository,
	req usecase.MutationRequest,
) (*entity.CurrencyTransaction, bool, error) {
	if req.IdempotencyKey == "" {
		return nil, false, nil
	}

	existing, err := txRepo.GetByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	if existing.Type != req.Type || !existing.Amount.Equal(req.Amount) {
		return nil, true, fmt.Errorf("%w: idempotency key %q was used for %s %s",
			errs.ErrDuplicateTransaction, req.IdempotencyKey, existing.Type, entity.FormatAmount(existing.Amount))
	}

	return existing, true, nil
}
