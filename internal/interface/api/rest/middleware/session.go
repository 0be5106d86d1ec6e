package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/infrastructure/backend"
)

const (
	CtxCurrentUser = "currentUser"

	SessionCookie = "storeit-session"
)

// SessionMiddleware resolves the caller's user from the session cookie, or
// from a bearer token when no cookie is sent. Callers without a usable
// session are redirected to signInPath.
func SessionMiddleware(userService ports.UserService, signInPath string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := userService.CurrentUser(c.Request.Context(), sessionFromRequest(c))
		switch {
		case err == nil:
		case errors.Is(err, backend.ErrNoSession), errors.Is(err, backend.ErrInvalidSession):
			c.Redirect(http.StatusSeeOther, signInPath)
			c.Abort()
			return
		case errors.Is(err, user.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		default:
			logger.Error("CurrentUser() error", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			return
		}

		c.Set(CtxCurrentUser, u)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context) string {
	if s, err := c.Cookie(SessionCookie); err == nil && s != "" {
		return s
	}

	authHeader := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return ""
	}
	return tokenStr
}

// CurrentUser returns the user stored by SessionMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(CtxCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}
