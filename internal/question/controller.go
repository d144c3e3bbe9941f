package question

import (
	"errors"
	"net/http"
	"strconv"

	"forum/internal/db"
	"forum/internal/user"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	service QuestionServiceInterface
}

func NewQuestionController(service QuestionServiceInterface) *QuestionController {
	return &QuestionController{
		service: service,
	}
}

// CreateQuestion handles POST /question. Responses are plain text.
func (qc *QuestionController) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := qc.service.CreateQuestion(c.Request.Context(), req)

	switch {
	case err == nil:
		c.String(http.StatusOK, "Question created successfully!")
	case errors.Is(err, db.ErrConnectionFailure):
		c.String(http.StatusInternalServerError, "Failed to connect to database")
	case errors.Is(err, user.ErrUserNotFound):
		c.String(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrLookupUser):
		c.String(http.StatusInternalServerError, "Failed to fetch user ID")
	default:
		c.String(http.StatusInternalServerError, "Failed to insert into Question table")
	}
}

// GetQuestion handles GET /api/question/:question_id. Responses are JSON.
func (qc *QuestionController) GetQuestion(c *gin.Context) {
	// question_id is a 32-bit serial: anything that does not parse into that
	// range cannot match a row.
	id, err := strconv.ParseInt(c.Param("question_id"), 10, 32)
	if err != nil {
		notFound(c)
		return
	}

	question, err := qc.service.GetQuestion(c.Request.Context(), int(id))
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			notFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Not Found",
		"message": "The requested question could not be found.",
	})
}
