package question

import (
	"context"
	"database/sql"
	"errors"

	"forum/internal/db"

	"github.com/sirupsen/logrus"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepository struct{}

type QuestionRepositoryInterface interface {
	Create(ctx context.Context, q db.Querier, userID int, title, content *string) (int, error)
	GetByID(ctx context.Context, q db.Querier, id int) (*Question, error)
}

func NewQuestionRepository() QuestionRepositoryInterface {
	return &QuestionRepository{}
}

func (r *QuestionRepository) Create(
	ctx context.Context,
	q db.Querier,
	userID int,
	title, content *string,
) (int, error) {
	query := `
		INSERT INTO "Question" (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING question_id
	`

	var id int
	if err := q.QueryRowContext(ctx, query, userID, title, content).Scan(&id); err != nil {
		logrus.WithError(err).Error("Error inserting into Question table")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"question_id": id,
		"user_id":     userID,
	}).Info("Question created successfully")

	return id, nil
}

func (r *QuestionRepository) GetByID(
	ctx context.Context,
	q db.Querier,
	id int,
) (*Question, error) {
	query := `
		SELECT question_id, user_id, title, content, created_at
		FROM "Question"
		WHERE question_id = $1
	`

	var (
		question Question
		userID   sql.NullInt64
	)
	err := q.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&userID,
		&question.Title,
		&question.Content,
		&question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		logrus.WithError(err).Error("Error fetching question")
		return nil, err
	}

	if userID.Valid {
		uid := int(userID.Int64)
		question.UserID = &uid
	}

	return &question, nil
}
