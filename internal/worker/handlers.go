package worker

import (
	"fmt"

	"forum/internal/events"

	"github.com/sirupsen/logrus"
)

func handleEvent(event *events.Event, workerID int) error {
	switch event.Type {
	case events.UserCreated:
		return handleUserCreated(event, workerID)
	case events.QuestionCreated:
		return handleQuestionCreated(event, workerID)
	default:
		return fmt.Errorf("unknown event type: %q", event.Type)
	}
}

func handleUserCreated(event *events.Event, workerID int) error {
	if event.UserID == 0 {
		return fmt.Errorf("user.created without user_id")
	}

	logrus.WithFields(logrus.Fields{
		"worker":      workerID,
		"user_id":     event.UserID,
		"user_name":   event.UserName,
		"occurred_at": event.OccurredAt,
	}).Info("User joined the forum")
	return nil
}

func handleQuestionCreated(event *events.Event, workerID int) error {
	if event.QuestionID == 0 {
		return fmt.Errorf("question.created without question_id")
	}

	logrus.WithFields(logrus.Fields{
		"worker":      workerID,
		"question_id": event.QuestionID,
		"user_id":     event.UserID,
		"title":       event.Title,
		"occurred_at": event.OccurredAt,
	}).Info("Question posted")
	return nil
}
