package question

import (
	"context"
	"errors"
	"fmt"

	"forum/internal/db"
	"forum/internal/events"
	"forum/internal/observability"
	"forum/internal/user"

	"github.com/sirupsen/logrus"
)

var (
	ErrLookupUser     = errors.New("failed to fetch user ID")
	ErrInsertQuestion = errors.New("failed to insert into Question table")
)

type QuestionServiceInterface interface {
	CreateQuestion(ctx context.Context, req CreateQuestionRequest) (int, error)
	GetQuestion(ctx context.Context, id int) (*Question, error)
}

type QuestionService struct {
	repo      QuestionRepositoryInterface
	userRepo  user.UserRepositoryInterface
	pool      *db.Pool
	publisher events.Publisher
	metrics   *observability.Metrics
}

func NewQuestionService(
	repo QuestionRepositoryInterface,
	userRepo user.UserRepositoryInterface,
	pool *db.Pool,
	publisher events.Publisher,
	metrics *observability.Metrics,
) QuestionServiceInterface {
	return &QuestionService{
		repo:      repo,
		userRepo:  userRepo,
		pool:      pool,
		publisher: publisher,
		metrics:   metrics,
	}
}

// CreateQuestion resolves the author by name and inserts the question on the
// same held connection. The two statements are not wrapped in a transaction.
// The connection is back in the pool before the event goes out.
func (s *QuestionService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (int, error) {
	id, userID, err := s.insertQuestion(ctx, req)
	if err != nil {
		return 0, err
	}
	s.metrics.QuestionsCreatedTotal.Inc()

	title := ""
	if req.Title != nil {
		title = *req.Title
	}
	if err := s.publisher.Publish(ctx, events.NewQuestionCreated(id, userID, title)); err != nil {
		logrus.WithError(err).WithField("question_id", id).Warn("Failed to publish question.created event")
	}

	return id, nil
}

func (s *QuestionService) insertQuestion(ctx context.Context, req CreateQuestionRequest) (questionID, userID int, err error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer s.pool.Release(conn)

	userID, err = s.userRepo.GetIDByName(ctx, conn, req.UserName)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("%w: %w", ErrLookupUser, err)
	}

	questionID, err = s.repo.Create(ctx, conn, userID, req.Title, req.Content)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInsertQuestion, err)
	}
	return questionID, userID, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id int) (*Question, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(conn)

	return s.repo.GetByID(ctx, conn, id)
}
