// Package dbtest builds throwaway SQLite-backed pools for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"forum/internal/config"
	"forum/internal/db"
	"forum/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
)

// NewSQLitePool opens a pool over a fresh database file in t.TempDir().
// The pool is closed when the test ends.
func NewSQLitePool(t *testing.T, poolSize int) (*db.Pool, *observability.Metrics) {
	t.Helper()

	database, err := db.Open(&config.DBConfig{
		Driver:   string(db.SQLite),
		Name:     filepath.Join(t.TempDir(), "forum.db"),
		PoolSize: poolSize,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	pool := db.NewPool(database, db.SQLite, metrics)
	t.Cleanup(func() {
		_ = pool.Close()
	})

	return pool, metrics
}
