package schema

import (
	"context"
	"errors"
	"fmt"

	"forum/internal/db"

	"github.com/sirupsen/logrus"
)

var (
	ErrCreateUserTable     = errors.New("error creating User table")
	ErrCreateQuestionTable = errors.New("error creating Question table")
)

type SchemaServiceInterface interface {
	CreateTables(ctx context.Context) error
}

type SchemaService struct {
	pool *db.Pool
}

func NewSchemaService(pool *db.Pool) SchemaServiceInterface {
	return &SchemaService{pool: pool}
}

// CreateTables creates the User table, then the Question table, on one held
// connection. Both statements are idempotent; the second is skipped when the
// first fails.
func (s *SchemaService) CreateTables(ctx context.Context) error {
	ddl, ok := ddlByDialect[s.pool.Dialect()]
	if !ok {
		return fmt.Errorf("%w: no DDL for dialect %q", ErrCreateUserTable, s.pool.Dialect())
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(conn)

	if _, err := conn.ExecContext(ctx, ddl.user); err != nil {
		logrus.WithError(err).Error("Error creating User table")
		return fmt.Errorf("%w: %w", ErrCreateUserTable, err)
	}
	logrus.Info("User table created successfully")

	if _, err := conn.ExecContext(ctx, ddl.question); err != nil {
		logrus.WithError(err).Error("Error creating Question table")
		return fmt.Errorf("%w: %w", ErrCreateQuestionTable, err)
	}
	logrus.Info("Question table created successfully")

	return nil
}
