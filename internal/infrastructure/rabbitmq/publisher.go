package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"walletadmin/internal/domain/transaction"
)

// DefaultExchange receives admin status transitions for the backend workers
const DefaultExchange = "wallet_admin_events"

// channel is the subset of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements transaction.Submitter by publishing each transition
// to a durable topic exchange.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  channel
	exchange string
	reopen   func() (channel, error)
	log      zerolog.Logger
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewPublisher dials the broker and declares the exchange
func NewPublisher(amqpURL, exchange string, log zerolog.Logger) (*Publisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	p := &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log.With().Str("component", "rabbitmq_publisher").Logger(),
	}
	p.reopen = func() (channel, error) { return conn.Channel() }

	if err := p.declare(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) declare() error {
	return p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil)
}

// RoutingKey is transition.<kind>.<status>, e.g. transition.request.approved
func RoutingKey(req transaction.TransitionRequest) string {
	return "transition." + string(req.Kind) + "." + req.To
}

// Submit publishes the transition. A failed publish reopens the channel and
// retries once.
func (p *Publisher) Submit(ctx context.Context, req transaction.TransitionRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode transition: %w", err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    req.IdempotencyKey,
		Timestamp:    req.RequestedAt,
		Body:         body,
	}
	key := RoutingKey(req)

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, msg)
	if err == nil {
		return nil
	}
	p.log.Warn().Err(err).Str("routing_key", key).Msg("publish failed; reopening channel")

	if p.reopen == nil {
		return fmt.Errorf("failed to publish transition: %w", err)
	}
	ch, chErr := p.reopen()
	if chErr != nil {
		return fmt.Errorf("failed to reopen rabbitmq channel: %w", chErr)
	}
	if closeErr := p.channel.Close(); closeErr != nil {
		p.log.Debug().Err(closeErr).Msg("closing stale channel")
	}
	p.channel = ch
	if err := p.declare(); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish transition: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
