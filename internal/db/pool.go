package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"forum/internal/observability"

	"github.com/sirupsen/logrus"
)

// Querier is the subset of *sql.DB, *sql.Tx and *Conn the repositories use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pool hands out dedicated connections from a bounded *sql.DB.
type Pool struct {
	db      *sql.DB
	dialect Dialect
	metrics *observability.Metrics
}

func NewPool(db *sql.DB, dialect Dialect, metrics *observability.Metrics) *Pool {
	return &Pool{
		db:      db,
		dialect: dialect,
		metrics: metrics,
	}
}

// Acquire blocks until a connection is free or ctx is done. Every
// successful Acquire must be paired with Release.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		p.metrics.DBAcquireErrorsTotal.Inc()
		logrus.WithError(err).Error("Failed to acquire database connection")
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	p.recordStats()
	return &Conn{raw: conn, metrics: p.metrics}, nil
}

// Release returns conn to the pool. It is safe to call with nil.
func (p *Pool) Release(conn *Conn) {
	if conn == nil {
		return
	}
	if err := conn.raw.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to release database connection")
	}
	p.recordStats()
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Pool) Dialect() Dialect {
	return p.dialect
}

func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

func (p *Pool) Close() error {
	return p.db.Close()
}

func (p *Pool) recordStats() {
	stats := p.db.Stats()
	p.metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
	p.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
}

// Conn is a held pool connection that times every statement it runs.
type Conn struct {
	raw     *sql.Conn
	metrics *observability.Metrics
}

func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer c.observe(query, time.Now())
	return c.raw.ExecContext(ctx, query, args...)
}

func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer c.observe(query, time.Now())
	return c.raw.QueryContext(ctx, query, args...)
}

func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer c.observe(query, time.Now())
	return c.raw.QueryRowContext(ctx, query, args...)
}

func (c *Conn) observe(query string, start time.Time) {
	c.metrics.DBQueryDuration.WithLabelValues(statementKind(query)).Observe(time.Since(start).Seconds())
}

// statementKind returns the leading SQL keyword, e.g. SELECT or CREATE.
func statementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(fields[0])
}
