// Package middlewares holds the gin middlewares shared by API routes.
package middlewares

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const serviceKeyHeader = "X-Service-Key"

// ServiceKeyAuth guards routes with the shared service secret from
// SERVICE_API_KEY. Callers are other trusted services, not end users, so a
// single shared key is enough. An empty configured key rejects everything
// rather than opening the API.
func ServiceKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("SERVICE_API_KEY")
		provided := c.GetHeader(serviceKeyHeader)
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid service key"})
			return
		}
		c.Next()
	}
}
