package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"forum/internal/observability"
	"forum/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AMQPPublisher sends events to a durable RabbitMQ queue through the
// default exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	queue   string
	metrics *observability.Metrics
}

func NewAMQPPublisher(conn *amqp.Connection, queueName string, metrics *observability.Metrics) (*AMQPPublisher, error) {
	ch, err := queue.CreateChannel(conn)
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if _, err := queue.DeclareQueue(ch, queueName); err != nil {
		return nil, err
	}

	return &AMQPPublisher{
		conn:    conn,
		queue:   queueName,
		metrics: metrics,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ch, err := queue.CreateChannel(p.conn)
	if err != nil {
		p.metrics.EventsPublishFailuresTotal.WithLabelValues(string(event.Type)).Inc()
		return err
	}
	defer ch.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key (queue name)
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.metrics.EventsPublishFailuresTotal.WithLabelValues(string(event.Type)).Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.metrics.EventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()
	logrus.WithFields(logrus.Fields{
		"event_type": event.Type,
		"queue":      p.queue,
	}).Debug("Event published")
	return nil
}
