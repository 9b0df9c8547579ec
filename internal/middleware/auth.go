package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/meetclone/internal/session"
	"github.com/thereayou/meetclone/pkg/auth"
)

// SessionKey is the gin context key the resolved session is stored under.
const SessionKey = "session"

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "meetclone_session"

// SessionMiddleware resolves the session cookie to a server-side session
// and puts it in the request context. Requests without a valid session
// pass through with nothing set; the guards below decide what that means
// per route.
func SessionMiddleware(tokens *auth.TokenManager, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		if err != nil {
			c.Next()
			return
		}

		sessionID, err := tokens.Verify(cookie)
		if err != nil {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session resolved by SessionMiddleware, or
// nil when the request is anonymous.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	return v.(*session.Session)
}

// RequireLogin redirects anonymous requests back to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsLoggedIn {
			c.Redirect(http.StatusFound, "/loginpage")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin bounces non-admin users to the landing page. It assumes
// RequireLogin already ran.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAdmin() {
			c.Redirect(http.StatusFound, "/index")
			c.Abort()
			return
		}
		c.Next()
	}
}
