package question

import (
	"context"
	"strings"
	"testing"
	"time"

	"forum/internal/db"
	"forum/internal/db/dbtest"
	"forum/internal/events"
	"forum/internal/observability"
	"forum/internal/schema"
	"forum/internal/user"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// poolWatchingPublisher records how many connections are checked out when
// an event is published.
type poolWatchingPublisher struct {
	pool  *db.Pool
	inUse []int
}

func (p *poolWatchingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.inUse = append(p.inUse, p.pool.Stats().InUse)
	return nil
}

func strPtr(s string) *string { return &s }

type fixture struct {
	pool    *db.Pool
	metrics *observability.Metrics
	service QuestionServiceInterface
}

func newFixture(t *testing.T, publisher events.Publisher) *fixture {
	t.Helper()

	pool, metrics := dbtest.NewSQLitePool(t, 4)
	require.NoError(t, schema.NewSchemaService(pool).CreateTables(context.Background()))

	return &fixture{
		pool:    pool,
		metrics: metrics,
		service: NewQuestionService(NewQuestionRepository(), user.NewUserRepository(), pool, publisher, metrics),
	}
}

func (f *fixture) createUser(t *testing.T, name string) int {
	t.Helper()

	conn, err := f.pool.Acquire(context.Background())
	require.NoError(t, err)
	defer f.pool.Release(conn)

	id, err := user.NewUserRepository().Create(context.Background(), conn, strPtr(name))
	require.NoError(t, err)
	return id
}

func (f *fixture) countQuestions(t *testing.T) int {
	t.Helper()

	conn, err := f.pool.Acquire(context.Background())
	require.NoError(t, err)
	defer f.pool.Release(conn)

	var count int
	require.NoError(t, conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM "Question"`).Scan(&count))
	return count
}

func TestQuestionService_CreateAndGet(t *testing.T) {
	f := newFixture(t, events.NopPublisher{})
	userID := f.createUser(t, "alice")
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	id, err := f.service.CreateQuestion(ctx, CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr("Why Go?"),
		Content:  strPtr("Because."),
	})
	require.NoError(t, err)

	question, err := f.service.GetQuestion(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, question.ID)
	require.NotNil(t, question.UserID)
	assert.Equal(t, userID, *question.UserID)
	assert.Equal(t, "Why Go?", question.Title)
	assert.Equal(t, "Because.", question.Content)
	assert.True(t, question.CreatedAt.After(before), "created_at defaults to insertion time")
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.QuestionsCreatedTotal))
	assert.Equal(t, 0, f.pool.Stats().InUse)
}

func TestQuestionService_UnknownUserInsertsNothing(t *testing.T) {
	publisher := new(MockPublisher)
	f := newFixture(t, publisher)

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("ghost"),
		Title:    strPtr("t"),
		Content:  strPtr("c"),
	})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Equal(t, 0, f.countQuestions(t))
	assert.Equal(t, 0, f.pool.Stats().InUse)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestQuestionService_MissingContentFailsInsert(t *testing.T) {
	f := newFixture(t, events.NopPublisher{})
	f.createUser(t, "alice")

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr("t"),
	})

	assert.ErrorIs(t, err, ErrInsertQuestion)
	assert.Equal(t, 0, f.countQuestions(t))
}

func TestQuestionService_PublishesQuestionCreated(t *testing.T) {
	publisher := new(MockPublisher)
	f := newFixture(t, publisher)
	userID := f.createUser(t, "alice")

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.QuestionCreated && e.UserID == userID && e.Title == "Why Go?"
	})).Return(nil)

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr("Why Go?"),
		Content:  strPtr("Because."),
	})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestQuestionService_GetMissingQuestion(t *testing.T) {
	f := newFixture(t, events.NopPublisher{})

	_, err := f.service.GetQuestion(context.Background(), 12345)

	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.Equal(t, 0, f.pool.Stats().InUse)
}

func TestQuestionService_LookupFailure(t *testing.T) {
	// Tables were never created: the user lookup itself fails.
	pool, metrics := dbtest.NewSQLitePool(t, 1)
	service := NewQuestionService(NewQuestionRepository(), user.NewUserRepository(), pool, events.NopPublisher{}, metrics)

	_, err := service.CreateQuestion(context.Background(), CreateQuestionRequest{UserName: strPtr("alice")})

	assert.ErrorIs(t, err, ErrLookupUser)
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestQuestionService_ConnectionFailure(t *testing.T) {
	pool, metrics := dbtest.NewSQLitePool(t, 1)
	require.NoError(t, pool.Close())
	service := NewQuestionService(NewQuestionRepository(), user.NewUserRepository(), pool, events.NopPublisher{}, metrics)

	_, err := service.GetQuestion(context.Background(), 1)
	assert.ErrorIs(t, err, db.ErrConnectionFailure)

	_, err = service.CreateQuestion(context.Background(), CreateQuestionRequest{})
	assert.ErrorIs(t, err, db.ErrConnectionFailure)
}

func TestQuestionService_ContentLongerThanLimitIsRejected(t *testing.T) {
	f := newFixture(t, events.NopPublisher{})
	f.createUser(t, "alice")

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr("t"),
		Content:  strPtr(strings.Repeat("x", 1001)),
	})

	assert.ErrorIs(t, err, ErrInsertQuestion)
	assert.Equal(t, 0, f.countQuestions(t))
}

func TestQuestionService_ContentAtLimitIsStored(t *testing.T) {
	f := newFixture(t, events.NopPublisher{})
	f.createUser(t, "alice")

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr(strings.Repeat("t", 255)),
		Content:  strPtr(strings.Repeat("x", 1000)),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.countQuestions(t))
}

func TestQuestionService_ReleasesConnectionBeforePublishing(t *testing.T) {
	pool, metrics := dbtest.NewSQLitePool(t, 4)
	require.NoError(t, schema.NewSchemaService(pool).CreateTables(context.Background()))
	publisher := &poolWatchingPublisher{pool: pool}
	f := &fixture{
		pool:    pool,
		metrics: metrics,
		service: NewQuestionService(NewQuestionRepository(), user.NewUserRepository(), pool, publisher, metrics),
	}
	f.createUser(t, "alice")

	_, err := f.service.CreateQuestion(context.Background(), CreateQuestionRequest{
		UserName: strPtr("alice"),
		Title:    strPtr("t"),
		Content:  strPtr("c"),
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0}, publisher.inUse)
}
