package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultAllowedHeaders = "Content-Type, Authorization"

// CORSMiddleware allows any origin and method. Preflights get back whatever
// headers they asked for.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, HEAD, PUT, PATCH, POST, DELETE, OPTIONS")

		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			header.Set("Access-Control-Allow-Headers", requested)
			header.Add("Vary", "Access-Control-Request-Headers")
		} else {
			header.Set("Access-Control-Allow-Headers", defaultAllowedHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
