package middleware

import (
	"crypto/subtle"
	"net/http"

	"questbot/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const apiTokenHeader = "X-API-Token"

type Authorization struct {
	apiToken string
}

func NewAuthorization(apiToken string) *Authorization {
	return &Authorization{
		apiToken: apiToken,
	}
}

// TokenAuth guards the ops API with a static token. The comparison is
// constant-time; an empty configured token disables the surface entirely.
func (a *Authorization) TokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		if a.apiToken == "" {
			log.Error("api token not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "api disabled"})
			return
		}

		provided := c.GetHeader(apiTokenHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(a.apiToken)) != 1 {
			log.Info("unauthorized api access attempt",
				zap.String("remote_addr", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
