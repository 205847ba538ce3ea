package middleware

import (
	"net/http"
	"strings"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "tasker_session"

// ExtractSessionToken pulls the session token from the cookie or, failing
// that, the Authorization header.
func ExtractSessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthMiddleware validates the session token against the sessions table and
// puts the user on the context. Every protected route checks this first.
func AuthMiddleware(db *database.Database, authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractSessionToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.Fail(403, "authentication required", "unauthorized"))
			return
		}

		session, err := authService.ValidateSession(db, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.Fail(403, "invalid or expired session", "unauthorized"))
			return
		}

		c.Set("userID", session.UserID)
		c.Set("session", session)

		c.Next()
	}
}
