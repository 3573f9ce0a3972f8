package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds the RabbitMQ connection settings
type Config struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// DefaultExchange is the topic exchange ledger events go to
const DefaultExchange = "currency.events"

// channel is the subset of *amqp.Channel the publisher uses
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes ledger events to a durable topic exchange
type AMQPPublisher struct {
	mu           sync.Mutex
	conn         *amqp.Connection
	channel      channel
	exchange     string
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

var _ msgport.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials RabbitMQ and declares the exchange
func NewAMQPPublisher(cfg Config, logger coreport.Logger, timeProvider coreport.TimeProvider) (*AMQPPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("Event publisher connected", map[string]any{"exchange": cfg.Exchange})

	p := newPublisher(ch, cfg.Exchange, logger, timeProvider)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger coreport.Logger, timeProvider coreport.TimeProvider) *AMQPPublisher {
	return &AMQPPublisher{
		channel:      ch,
		exchange:     exchange,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// PublishTransactionCreated publishes the event with routing key
// currency.transaction.created.<type>, e.g. currency.transaction.created.charge
func (p *AMQPPublisher) PublishTransactionCreated(ctx context.Context, event msgport.TransactionCreatedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	routingKey := msgport.EventTransactionCreated + "." + strings.ToLower(event.Type)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return errors.New("event publisher is closed")
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			MessageId:     event.EventID,
			CorrelationId: coreport.RequestIDFromContext(ctx),
			Type:          msgport.EventTransactionCreated,
			ContentType:   "application/json",
			Body:          body,
			Timestamp:     p.timeProvider.Now(),
			DeliveryMode:  amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", msgport.EventTransactionCreated, err)
	}

	p.logger.Debug("Published ledger event", map[string]any{
		"event_id":       event.EventID,
		"routing_key":    routingKey,
		"user_id":        event.UserID,
		"transaction_id": event.TransactionID,
	})
	return nil
}

// Close closes the channel and connection; later publishes fail
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errList []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errList = append(errList, err)
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errList = append(errList, err)
		}
		p.conn = nil
	}

	p.logger.Info("Event publisher closed", nil)
	return errors.Join(errList...)
}
