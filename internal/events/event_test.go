package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewQuestionCreated(t *testing.T) {
	before := time.Now().UTC()
	event := NewQuestionCreated(10, 3, "Why Go?")

	assert.Equal(t, QuestionCreated, event.Type)
	assert.Equal(t, 10, event.QuestionID)
	assert.Equal(t, 3, event.UserID)
	assert.Equal(t, "Why Go?", event.Title)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.False(t, event.OccurredAt.Before(before))
}

func TestNewUserCreated(t *testing.T) {
	event := NewUserCreated(3, "alice")

	assert.Equal(t, UserCreated, event.Type)
	assert.Equal(t, 3, event.UserID)
	assert.Equal(t, "alice", event.UserName)
	assert.Zero(t, event.QuestionID)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), NewUserCreated(1, "alice")))
}
