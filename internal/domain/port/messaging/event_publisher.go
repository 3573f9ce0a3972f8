package messaging

import (
	"context"
	"time"
)

// Event names
const (
	EventTransactionCreated = "currency.transaction.created"
)

// TransactionCreatedEvent is emitted after a ledger mutation commits
type TransactionCreatedEvent struct {
	EventID            string    `json:"event_id"`
	UserID             uint64    `json:"user_id"`
	TransactionID      uint64    `json:"transaction_id"`
	Type               string    `json:"type"`
	Amount             string    `json:"amount"`
	BalanceAfter       string    `json:"balance_after"`
	LockedBalanceAfter string    `json:"locked_balance_after"`
	ReferenceID        string    `json:"reference_id,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// EventPublisher delivers domain events to downstream consumers
type EventPublisher interface {
	// PublishTransactionCreated publishes the event; an empty EventID is filled in
	PublishTransactionCreated(ctx context.Context, event TransactionCreatedEvent) error
	// Close releases the underlying connection
	Close() error
}
