package middleware

import (
	"net/http"

	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/token"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware validates channel tokens for WebSocket connections.
// The upgrade request carries the token as ?token= because the session
// cookie is not reliable cross-origin on the handshake.
func WebSocketAuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.Extract(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.Fail(403, "authentication required", "unauthorized"))
			return
		}

		claims, err := authService.ValidateChannelToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.Fail(403, "invalid or expired token", "unauthorized"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("sessionID", claims.SessionID)

		c.Next()
	}
}
