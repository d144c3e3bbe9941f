package db

import (
	"context"
	"database/sql"
	"fmt"
	"forum/internal/config"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Dialect names the database/sql driver the pool talks through.
type Dialect string

const (
	Postgres Dialect = "pgx"
	SQLite   Dialect = "sqlite3"
)

// Open prepares a *sql.DB for the configured driver. No connection is made
// until the first caller asks for one.
func Open(dbCfg *config.DBConfig) (*sql.DB, error) {
	var dsn string

	switch Dialect(dbCfg.Driver) {
	case Postgres:
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode)
	case SQLite:
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", dbCfg.Name)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}

	db, err := sql.Open(dbCfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	poolSize := dbCfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	// Callers beyond poolSize wait in database/sql's unbounded queue.
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// WaitForStore pings the database with a linear backoff. An unreachable
// store is only logged: handlers report it per request.
func WaitForStore(ctx context.Context, db *sql.DB, maxRetries int) error {
	var err error

	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			logrus.Info("Database connection established successfully")
			return nil
		}

		logrus.WithError(err).Warnf("Failed to ping database (attempt %d/%d)", i+1, maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}

	logrus.WithError(err).Errorf("Database unreachable after %d attempts, continuing without it", maxRetries)
	return err
}
