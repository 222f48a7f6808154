package middleware

import (
	"net/http"
	"net/url"

	"inkwell/internal/pkg"
	rdb "inkwell/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	SessionCookieName  = "session"
	LoginPath          = "/auth/login/"
)

// Authenticate resolves the session cookie into the current user, when
// there is one. It never aborts; anonymous requests pass through so the
// read-only pages can render for visitors.
func Authenticate() gin.HandlerFunc {
	sessions := &rdb.SessionRepository{}
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := pkg.ParseSession(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		// The redis copy is authoritative: a newer login elsewhere
		// displaces this token.
		stored, err := sessions.Get(claims.UserID)
		if err != nil || stored != tokenStr {
			c.Next()
			return
		}
		_ = sessions.Extend(claims.UserID)

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login prompt,
// preserving the originally requested URL in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserIDKey); !ok {
			q := url.Values{}
			q.Set("next", c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginPath+"?"+q.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func CurrentUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsernameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
