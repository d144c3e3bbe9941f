package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"forum/internal/config"
	"forum/internal/db"
	"forum/internal/events"
	"forum/internal/handler"
	"forum/internal/observability"
	"forum/internal/queue"
	"forum/internal/schema"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	logrus.Info("Metrics initialized")

	database, err := db.Open(&cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open database")
	}
	pool := db.NewPool(database, db.Dialect(cfg.DB.Driver), metrics)
	defer func() {
		if err := pool.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close database connection")
		}
	}()

	// The pool connects lazily; an unreachable store only makes requests fail.
	_ = db.WaitForStore(ctx, database, 5)

	if cfg.AutoMigrate {
		if err := schema.NewSchemaService(pool).CreateTables(ctx); err != nil {
			logrus.WithError(err).Error("Automatic schema creation failed")
		}
	}

	publisher, conn := setupPublisher(ctx, &cfg.RabbitMQ, metrics)
	if conn != nil {
		defer func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close RabbitMQ connection")
			}
		}()
	}

	r := handler.SetupHandler(pool, publisher, metrics, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logrus.Infof("Forum API listening on :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shut down")
	}
}

// setupPublisher returns a RabbitMQ-backed publisher when a broker URL is
// configured and a no-op publisher otherwise.
func setupPublisher(ctx context.Context, rabbitMQCfg *config.RabbitMQConfig, metrics *observability.Metrics) (events.Publisher, *amqp.Connection) {
	if rabbitMQCfg.URL == "" {
		logrus.Info("RABBITMQ_URL not set, forum events disabled")
		return events.NopPublisher{}, nil
	}

	conn, err := queue.SetupRabbitMQ(ctx, rabbitMQCfg, 5)
	if err != nil {
		logrus.WithError(err).Warn("Forum events disabled")
		return events.NopPublisher{}, nil
	}

	publisher, err := events.NewAMQPPublisher(conn, rabbitMQCfg.Queue, metrics)
	if err != nil {
		logrus.WithError(err).Warn("Forum events disabled")
		_ = conn.Close()
		return events.NopPublisher{}, nil
	}

	logrus.WithField("queue", rabbitMQCfg.Queue).Info("Forum events enabled")
	return publisher, conn
}
