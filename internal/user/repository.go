package user

import (
	"context"
	"database/sql"
	"errors"

	"forum/internal/db"

	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(ctx context.Context, q db.Querier, userName *string) (int, error)
	GetIDByName(ctx context.Context, q db.Querier, userName *string) (int, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a user row and returns the generated user_id
func (r *UserRepository) Create(ctx context.Context, q db.Querier, userName *string) (int, error) {
	query := `
		INSERT INTO "User" (user_name)
		VALUES ($1)
		RETURNING user_id
	`

	var id int
	if err := q.QueryRowContext(ctx, query, userName).Scan(&id); err != nil {
		logrus.WithError(err).Error("Error inserting into User table")
		return 0, err
	}

	logrus.WithField("user_id", id).Info("User created successfully")
	return id, nil
}

// GetIDByName resolves a user name to its user_id. Names are not unique;
// the oldest matching user wins.
func (r *UserRepository) GetIDByName(ctx context.Context, q db.Querier, userName *string) (int, error) {
	query := `
		SELECT user_id
		FROM "User"
		WHERE user_name = $1
		ORDER BY user_id
		LIMIT 1
	`

	var id int
	err := q.QueryRowContext(ctx, query, userName).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("user_name", deref(userName)).Warn("User not found")
			return 0, ErrUserNotFound
		}
		logrus.WithError(err).Error("Error fetching user ID")
		return 0, err
	}

	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
