package user

import (
	"context"
	"fmt"

	"forum/internal/db"
	"forum/internal/events"
	"forum/internal/observability"

	"github.com/sirupsen/logrus"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, userName *string) (int, error)
}

type UserService struct {
	repo      UserRepositoryInterface
	pool      *db.Pool
	publisher events.Publisher
	metrics   *observability.Metrics
}

func NewUserService(repo UserRepositoryInterface, pool *db.Pool, publisher events.Publisher, metrics *observability.Metrics) UserServiceInterface {
	return &UserService{
		repo:      repo,
		pool:      pool,
		publisher: publisher,
		metrics:   metrics,
	}
}

// CreateUser inserts a user on a pooled connection. Duplicate names are
// accepted. The connection is back in the pool before the event goes out.
func (s *UserService) CreateUser(ctx context.Context, userName *string) (int, error) {
	id, err := s.insertUser(ctx, userName)
	if err != nil {
		return 0, err
	}
	s.metrics.UsersCreatedTotal.Inc()

	if err := s.publisher.Publish(ctx, events.NewUserCreated(id, deref(userName))); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("Failed to publish user.created event")
	}

	return id, nil
}

func (s *UserService) insertUser(ctx context.Context, userName *string) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer s.pool.Release(conn)

	id, err := s.repo.Create(ctx, conn, userName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into User table: %w", err)
	}
	return id, nil
}
