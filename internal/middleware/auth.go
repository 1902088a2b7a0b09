package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextFirstName = "userFirstName"
	ContextEmail     = "userEmail"
)

// AuthMiddleware accepts the session token from the session cookie or from
// an Authorization: Bearer header.
func AuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Abort()
			httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			c.Abort()
			httperr.Unauthorized(c, "invalid_session", "Sessão inválida ou expirada.")
			return
		}

		c.Set(ContextUserID, claims.UserID())
		c.Set(ContextFirstName, claims.FirstName)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
