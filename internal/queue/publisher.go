package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes notification events onto the durable queue. Publish
// failures are logged, never propagated: a dead broker must not fail a
// booking.
type Publisher struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

func NewPublisher(conn *amqp.Connection, logger *zap.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p.conn == nil {
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.logger.Warn("notify: channel open failed", zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		p.logger.Warn("notify: queue declare failed", zap.Error(err))
		return
	}

	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("notify: marshal event failed", zap.Error(err))
		return
	}

	err = ch.PublishWithContext(ctx,
		"",                // default exchange
		NotificationQueue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.At,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Warn("notify: publish failed", zap.String("type", ev.Type), zap.Error(err))
	}
}
