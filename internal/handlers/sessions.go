package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/meetclone/internal/middleware"
	"github.com/thereayou/meetclone/internal/session"
	"github.com/thereayou/meetclone/pkg/auth"
)

// sessionWriter pairs the redis store with the cookie: every session
// mutation goes through persist so the stored state and the cookie can
// never drift apart.
type sessionWriter struct {
	store  session.Store
	tokens *auth.TokenManager
	ttl    time.Duration
}

func newSessionWriter(store session.Store, tokens *auth.TokenManager, ttl time.Duration) sessionWriter {
	return sessionWriter{store: store, tokens: tokens, ttl: ttl}
}

func (w sessionWriter) persist(c *gin.Context, sess *session.Session) error {
	if err := w.store.Save(c.Request.Context(), sess); err != nil {
		return err
	}

	token, err := w.tokens.Generate(sess.ID)
	if err != nil {
		return err
	}

	c.SetCookie(middleware.CookieName, token, int(w.ttl.Seconds()), "/", "", false, true)
	return nil
}

// destroy drops the server-side session and expires the cookie. Failures
// are logged and swallowed: logout must always succeed from the browser's
// point of view.
func (w sessionWriter) destroy(c *gin.Context, sess *session.Session) {
	if sess != nil {
		if err := w.store.Delete(c.Request.Context(), sess.ID); err != nil {
			logrus.WithError(err).WithField("session_id", sess.ID).Error("failed to delete session")
		}
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
}
