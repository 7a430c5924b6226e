package middleware

import (
	"errors"
	"net/http"
	"strings"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "editorial_session"

// Context keys set by the auth middlewares.
const (
	ctxUserID    = "userID"
	ctxRole      = "role"
	ctxSessionID = "sessionID"
)

// AuthMiddleware requires a valid session token from the session cookie or
// an "Authorization: Bearer" header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := authService.Authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole checks if the user has one of the specified roles
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !actor.Is(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated caller set by AuthMiddleware or OptionalAuth.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return service.Actor{}, false
	}
	role, _ := c.Get(ctxRole)
	id, ok1 := userID.(int64)
	r, ok2 := role.(models.Role)
	if !ok1 || !ok2 {
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Role: r}, true
}

// SessionID returns the id of the current session, if any.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxSessionID, claims.ID)
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	// format: "Bearer <token>"
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func abortAuth(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrUserBlocked):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is blocked"})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
