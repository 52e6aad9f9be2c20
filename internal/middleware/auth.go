package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/menu"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	apperrors "github.com/jwalitptl/restaurant-admin/pkg/errors"
)

const ContextSession = "session"

type AuthMiddleware struct {
	sessions *session.Store
}

func NewAuthMiddleware(sessions *session.Store) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the bearer token to a session and stores it on
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handler.RespondError(c, apperrors.Unauthorized(session.ErrUnauthenticated))
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			handler.RespondError(c, apperrors.Unauthorized(session.ErrUnauthenticated))
			return
		}

		sess, err := m.sessions.Resolve(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		c.Set(ContextSession, sess)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		c.Next()
	}
}

// RequireScreen rejects roles that may not open the screen.
func (m *AuthMiddleware) RequireScreen(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok {
			handler.RespondError(c, apperrors.Unauthorized(session.ErrUnauthenticated))
			return
		}
		if !menu.Allowed(key, sess.RoleID()) {
			handler.RespondError(c, apperrors.Forbidden("you do not have access to "+key))
			return
		}
		c.Next()
	}
}
