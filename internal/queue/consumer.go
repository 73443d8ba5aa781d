package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler receives each drained notification event. The default handler
// only logs; real delivery (email, SMS) is an external collaborator.
type Handler func(Event) error

// StartConsumer drains the notification queue in a reconnect loop.
// Intended to run in its own goroutine for the lifetime of the process.
func StartConsumer(url string, logger *zap.Logger, handle Handler) {
	if handle == nil {
		handle = func(ev Event) error {
			logger.Info("notification",
				zap.String("type", ev.Type),
				zap.Time("at", ev.At),
				zap.Any("data", ev.Data),
			)
			return nil
		}
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("notify-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, handle); err != nil {
			logger.Warn("notify-consumer: consume loop ended", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, handle Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var ev Event
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			_ = d.Nack(false, false) // malformed, do not requeue
			continue
		}
		if err := handle(ev); err != nil {
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("deliveries channel closed")
}
