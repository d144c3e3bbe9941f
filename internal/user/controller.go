package user

import (
	"errors"
	"net/http"

	"forum/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService UserServiceInterface
}

func NewUserController(userService UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles POST /user
func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	logrus.WithField("user_name", deref(req.UserName)).Debug("Create user request")

	if _, err := uc.userService.CreateUser(c.Request.Context(), req.UserName); err != nil {
		if errors.Is(err, db.ErrConnectionFailure) {
			c.String(http.StatusInternalServerError, "Failed to connect to database")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to insert into User table")
		return
	}

	c.String(http.StatusOK, "User created successfully!")
}
