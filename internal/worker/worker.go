package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"forum/internal/events"
	"forum/internal/observability"
	"forum/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// StartWorker consumes forum events from queueName until ctx is cancelled
// or the delivery channel closes.
func StartWorker(ctx context.Context, conn *amqp.Connection, queueName string, metrics *observability.Metrics, id int) error {
	ch, err := queue.CreateChannel(conn)
	if err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("worker %d failed to set QoS: %w", id, err)
	}

	msgs, err := ch.ConsumeWithContext(
		ctx,
		queueName,
		fmt.Sprintf("forum-worker-%d", id),
		false, // manual ACK
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("worker %d failed to start consuming messages: %w", id, err)
	}

	logrus.Infof("Worker %d started", id)

	for msg := range msgs {
		handleDelivery(msg, metrics, id)
	}

	logrus.Infof("Worker %d stopped", id)
	return nil
}

// handleDelivery acks events it understands and drops the rest without
// requeueing them.
func handleDelivery(msg amqp.Delivery, metrics *observability.Metrics, workerID int) {
	var event events.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logrus.WithError(err).Errorf("Worker %d received invalid payload", workerID)
		metrics.EventsConsumedTotal.WithLabelValues("unknown", "invalid").Inc()
		_ = msg.Nack(false, false)
		return
	}

	if err := handleEvent(&event, workerID); err != nil {
		logrus.WithError(err).Errorf("Worker %d rejected event", workerID)
		metrics.EventsConsumedTotal.WithLabelValues(string(event.Type), "invalid").Inc()
		_ = msg.Nack(false, false)
		return
	}

	metrics.EventsConsumedTotal.WithLabelValues(string(event.Type), "ok").Inc()
	_ = msg.Ack(false)
}
