package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

const maxReconnectBackoff = 30 * time.Second

// Handler обрабатывает одно уведомление
type Handler func(ctx context.Context, n domain.Notification) error

// Consumer читает очередь уведомлений и переподключается к брокеру при обрывах
type Consumer struct {
	url      string
	queue    string
	prefetch int
	handler  Handler
	logger   Logger
}

func NewConsumer(url, queue string, prefetch int, handler Handler, logger Logger) *Consumer {
	return &Consumer{url: url, queue: queue, prefetch: prefetch, handler: handler, logger: logger}
}

// Run блокируется до отмены контекста
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("queue-consumer: dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxReconnectBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("queue-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if c.prefetch > 0 {
		if err := ch.Qos(c.prefetch, 0, false); err != nil {
			c.logger.Warn("queue-consumer: set QoS failed: %v", err)
		}
	}
	if _, err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.logger.Info("queue-consumer: consuming %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	n, err := decode(d.Body)
	if err != nil {
		c.logger.Error("queue-consumer: drop malformed message %s: %v", d.MessageId, err)
		_ = d.Nack(false, false)
		return
	}

	if err := c.handler(ctx, n); err != nil {
		// без повторной постановки, чтобы не зациклиться; повторы уже были внутри обработчика
		c.logger.Error("queue-consumer: %s notification for booking id=%d failed: %v", n.Kind, n.BookingID, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
