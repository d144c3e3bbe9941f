package schema

import (
	"context"
	"testing"

	"forum/internal/db"
	"forum/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, pool *db.Pool, name string) bool {
	t.Helper()

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer pool.Release(conn)

	var count int
	err = conn.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1", name,
	).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestCreateTables_CreatesBothTables(t *testing.T) {
	pool, _ := dbtest.NewSQLitePool(t, 2)
	service := NewSchemaService(pool)

	require.NoError(t, service.CreateTables(context.Background()))

	assert.True(t, tableExists(t, pool, "User"))
	assert.True(t, tableExists(t, pool, "Question"))
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestCreateTables_IsIdempotent(t *testing.T) {
	pool, _ := dbtest.NewSQLitePool(t, 2)
	service := NewSchemaService(pool)
	ctx := context.Background()

	require.NoError(t, service.CreateTables(ctx))

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO "User" (user_name) VALUES ($1)`, "alice")
	require.NoError(t, err)
	pool.Release(conn)

	require.NoError(t, service.CreateTables(ctx))

	conn, err = pool.Acquire(ctx)
	require.NoError(t, err)
	defer pool.Release(conn)

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM "User"`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCreateTables_StopsAfterUserTableFailure(t *testing.T) {
	pool, _ := dbtest.NewSQLitePool(t, 2)
	ctx := context.Background()

	// An index already holding the name makes CREATE TABLE "User" fail.
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `CREATE TABLE placeholder (id INTEGER)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `CREATE INDEX "User" ON placeholder (id)`)
	require.NoError(t, err)
	pool.Release(conn)

	err = NewSchemaService(pool).CreateTables(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreateUserTable)
	assert.False(t, tableExists(t, pool, "Question"))
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestCreateTables_ConnectionFailure(t *testing.T) {
	pool, _ := dbtest.NewSQLitePool(t, 1)
	require.NoError(t, pool.Close())

	err := NewSchemaService(pool).CreateTables(context.Background())

	assert.ErrorIs(t, err, db.ErrConnectionFailure)
}
