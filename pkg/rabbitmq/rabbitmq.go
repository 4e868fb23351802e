package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/pkg/logx"

	amqp "github.com/streadway/amqp"
)

// OrderEventsQueue is the durable queue order events are routed to.
const OrderEventsQueue = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// mu serializes publishes on the shared channel.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the order
// events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logx.Info().Str("queue", OrderEventsQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrderEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", OrderEventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderEvent publishes the event as persistent JSON to the order
// events queue. The context is only checked before publishing; the AMQP
// library has no cancellable publish.
func (c *Client) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",               // default exchange
		OrderEventsQueue, // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// EventHandler processes one decoded order event.
type EventHandler func(event models.OrderEvent) error

// ConsumeOrderEvents registers a consumer on the order events queue and
// processes deliveries in a goroutine until the channel closes.
func (c *Client) ConsumeOrderEvents(handler EventHandler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		OrderEventsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
		logx.Info().Str("queue", OrderEventsQueue).Msg("order event consumer stopped")
	}()

	return nil
}

// handleDelivery acks processed messages, requeues failed ones and drops
// messages that are not valid order events.
func handleDelivery(msg amqp.Delivery, handler EventHandler) {
	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logx.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("dropping malformed order event")
		if rejectErr := msg.Reject(false); rejectErr != nil {
			logx.Error().Err(rejectErr).Uint64("tag", msg.DeliveryTag).Msg("failed to reject message")
		}
		return
	}

	if err := handler(event); err != nil {
		logx.Error().Err(err).Uint64("tag", msg.DeliveryTag).Str("type", event.Type).Msg("failed to process order event")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			logx.Error().Err(nackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to nack message")
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		logx.Error().Err(ackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to ack message")
	}
}

// LogOrderEvent is an EventHandler that writes an audit line per event.
func LogOrderEvent(event models.OrderEvent) error {
	logx.Info().
		Str("type", event.Type).
		Uint("order_id", event.OrderID).
		Time("occurred_at", event.OccurredAt).
		Msg("order event")
	return nil
}
