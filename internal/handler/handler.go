package handler

import (
	"context"
	"net/http"
	"time"

	"forum/internal/db"
	"forum/internal/events"
	"forum/internal/middleware"
	"forum/internal/observability"
	"forum/internal/question"
	"forum/internal/schema"
	"forum/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupHandler initializes all dependencies and routes
func SetupHandler(pool *db.Pool, publisher events.Publisher, metrics *observability.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.CORSMiddleware(), middleware.PrometheusMiddleware(metrics, "/metrics", "/health"))

	// Initialize repositories
	userRepo := user.NewUserRepository()
	questionRepo := question.NewQuestionRepository()

	// Initialize services
	schemaService := schema.NewSchemaService(pool)
	userService := user.NewUserService(userRepo, pool, publisher, metrics)
	questionService := question.NewQuestionService(questionRepo, userRepo, pool, publisher, metrics)

	// Initialize controllers
	schemaController := schema.NewSchemaController(schemaService)
	userController := user.NewUserController(userService)
	questionController := question.NewQuestionController(questionService)

	setupRoutes(r, schemaController, userController, questionController)

	r.GET("/health", healthCheck(pool))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

// setupRoutes configures all forum routes
func setupRoutes(r *gin.Engine, schemaCtrl *schema.SchemaController, userCtrl *user.UserController, questionCtrl *question.QuestionController) {
	r.GET("/create_table", schemaCtrl.CreateTables)
	r.POST("/user", userCtrl.CreateUser)
	r.POST("/question", questionCtrl.CreateQuestion)
	r.GET("/api/question/:question_id", questionCtrl.GetQuestion)
}

func healthCheck(pool *db.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}

		stats := pool.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
		})
	}
}
