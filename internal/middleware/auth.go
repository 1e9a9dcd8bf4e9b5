package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/service"
)

// SessionCookieName is the dedicated carrier for session handles. Matches
// the cookie contract set on login.
const SessionCookieName = "session_token"

const currentUserKey = "current_user"

// Auth resolves the request credential and stores the identity on the
// context. Exactly two carriers exist: the session cookie, then the
// Authorization bearer header. There is no other discovery mechanism; adding
// one has caused authentication bypasses before.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, fromCookie := extractCredential(c)
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		user, err := auth.Resolve(c.Request.Context(), credential, fromCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authFailureCode(err)})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func extractCredential(c *gin.Context) (credential string, fromCookie bool) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), false
	}

	return "", false
}

func authFailureCode(err error) string {
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, service.ErrIdentityNotFound):
		return "user_not_found"
	case errors.Is(err, service.ErrInvalidToken):
		return "invalid_token"
	default:
		return "not_authenticated"
	}
}

// CurrentUser returns the identity resolved by Auth. The second return is
// false when Auth did not run on this route.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
