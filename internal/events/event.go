package events

import "time"

type EventType string

const (
	UserCreated     EventType = "user.created"
	QuestionCreated EventType = "question.created"
)

// Event is the JSON message put on the forum events queue.
type Event struct {
	Type       EventType `json:"type"`
	UserID     int       `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	QuestionID int       `json:"question_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewUserCreated(userID int, userName string) Event {
	return Event{
		Type:       UserCreated,
		UserID:     userID,
		UserName:   userName,
		OccurredAt: time.Now().UTC(),
	}
}

func NewQuestionCreated(questionID, userID int, title string) Event {
	return Event{
		Type:       QuestionCreated,
		UserID:     userID,
		QuestionID: questionID,
		Title:      title,
		OccurredAt: time.Now().UTC(),
	}
}
