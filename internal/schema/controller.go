package schema

import (
	"errors"
	"net/http"

	"forum/internal/db"

	"github.com/gin-gonic/gin"
)

type SchemaController struct {
	service SchemaServiceInterface
}

func NewSchemaController(service SchemaServiceInterface) *SchemaController {
	return &SchemaController{
		service: service,
	}
}

// CreateTables handles GET /create_table
func (sc *SchemaController) CreateTables(c *gin.Context) {
	err := sc.service.CreateTables(c.Request.Context())

	switch {
	case err == nil:
		c.String(http.StatusOK, "Tables created successfully!")
	case errors.Is(err, db.ErrConnectionFailure):
		c.String(http.StatusInternalServerError, "Failed to connect to database")
	case errors.Is(err, ErrCreateQuestionTable):
		c.String(http.StatusInternalServerError, "Error creating Question table")
	default:
		c.String(http.StatusInternalServerError, "Error creating User table")
	}
}
