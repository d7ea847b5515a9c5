// Package service provides the RabbitMQ publisher for listing events.
// Publishing is best effort: errors are logged and returned so callers
// can ignore them without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur/internal/queue"
)

// Publisher sends listing events to the listing.events queue.  Each
// publish opens a short-lived connection, so a broker restart never
// leaves the publisher holding a dead channel.
type Publisher struct {
	URL    string
	Logger *slog.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{URL: url, Logger: logger}
}

// Publish sends ev as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev queue.ListingEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Warn("rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue.ListingQueueName, true, false, false, false, nil); err != nil {
		p.Logger.Warn("rabbitmq: queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ListingQueueName, false, false, pub); err != nil {
		p.Logger.Warn("rabbitmq: publish failed", "err", err, "entity", ev.Entity, "id", ev.ID)
		return err
	}
	return nil
}

// Discard drops every event.  It stands in for the broker when events
// are disabled.
type Discard struct{}

// Publish does nothing.
func (Discard) Publish(context.Context, queue.ListingEvent) error { return nil }
