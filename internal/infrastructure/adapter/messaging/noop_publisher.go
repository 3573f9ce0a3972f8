package messaging

import (
	"context"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
)

// NoopPublisher drops events; used when no broker is configured
type NoopPublisher struct {
	logger coreport.Logger
}

var _ msgport.EventPublisher = (*NoopPublisher)(nil)

// NewNoopPublisher creates a publisher that only logs at debug level
func NewNoopPublisher(logger coreport.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// PublishTransactionCreated discards the event
func (p *NoopPublisher) PublishTransactionCreated(_ context.Context, event msgport.TransactionCreatedEvent) error {
	p.logger.Debug("Event publishing disabled, dropping event", map[string]any{
		"transaction_id": event.TransactionID,
		"user_id":        event.UserID,
	})
	return nil
}

// Close is a no-op
func (p *NoopPublisher) Close() error {
	return nil
}
