package queue

import (
	"context"
	"fmt"
	"time"

	"forum/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// SetupRabbitMQ dials the broker with a linear backoff. It gives up early,
// returning ctx.Err(), once ctx is done.
func SetupRabbitMQ(ctx context.Context, rabbitMQCfg *config.RabbitMQConfig, maxRetries int) (*amqp.Connection, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conn, err := amqp.Dial(rabbitMQCfg.URL)
		if err == nil {
			logrus.Info("RabbitMQ connection established successfully")
			return conn, nil
		}
		lastErr = err
		logrus.WithError(err).Warnf("Failed to connect to RabbitMQ (attempt %d/%d)", attempt, maxRetries)

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, lastErr)
}

func CreateChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return ch, nil
}

func DeclareQueue(ch *amqp.Channel, queueName string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue: %w", err)
	}

	return q, nil
}
