package question

import "time"

type Question struct {
	ID        int       `json:"question_id"`
	UserID    *int      `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateQuestionRequest struct {
	UserName *string `json:"user_name" form:"user_name"`
	Title    *string `json:"title" form:"title"`
	Content  *string `json:"content" form:"content"`
}
