package currency

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
)

// publishTransactionCreated is best effort: the mutation is already committed
func (s *Service) publishTransactionCreated(ctx context.Context, tx *entity.CurrencyTransaction) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.PublishTimeout)
	defer cancel()

	event := msgport.TransactionCreatedEvent{
		UserID:             tx.UserID,
		TransactionID:      tx.ID,
		Type:               string(tx.Type),
		Amount:             entity.FormatAmount(tx.Amount),
		BalanceAfter:       entity.FormatAmount(tx.BalanceAfter),
		LockedBalanceAfter: entity.FormatAmount(tx.LockedBalanceAfter),
		ReferenceID:        tx.ReferenceID,
		OccurredAt:         tx.CreatedAt,
	}

	if err := s.publisher.PublishTransactionCreated(pubCtx, event); err != nil {
		s.logger.Warn("Failed to publish transaction event", map[string]any{
			"user_id":        tx.UserID,
			"transaction_id": tx.ID,
			"error":          err.Error(),
		})
		s.metrics.RecordEventPublished(msgport.EventTransactionCreated, coreport.OutcomeFailed)
		return
	}
	s.metrics.RecordEventPublished(msgport.EventTransactionCreated, coreport.OutcomeSuccess)
}
