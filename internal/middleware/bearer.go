package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
)

// ContextBearerKey is the gin context key storing the raw bearer token.
const ContextBearerKey = "bearerToken"

// BearerToken captures the bearer token from the Authorization header, or the
// token query parameter, without validating it. The token is also attached to
// the request context for credentials.CallerToken. Requests are never blocked.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token != "" {
			c.Set(ContextBearerKey, token)
			c.Request = c.Request.WithContext(credentials.WithCallerToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

// BearerFromContext returns the captured token or "".
func BearerFromContext(c *gin.Context) string {
	value, exists := c.Get(ContextBearerKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
