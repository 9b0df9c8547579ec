package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/meetclone/internal/handlers/dto"
	"github.com/thereayou/meetclone/internal/middleware"
	"github.com/thereayou/meetclone/internal/services"
	"github.com/thereayou/meetclone/internal/session"
	"github.com/thereayou/meetclone/internal/validation"
	"github.com/thereayou/meetclone/pkg/auth"
)

type AuthHandler struct {
	accounts *services.AccountService
	sessions sessionWriter
}

func NewAuthHandler(accounts *services.AccountService, store session.Store, tokens *auth.TokenManager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: newSessionWriter(store, tokens, sessionTTL),
	}
}

// Register handles POST /signup. On success the user is sent to the
// login page; on any failure the signup page re-renders with a message.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"error": msgSignupFailed})
		return
	}

	user, err := h.accounts.SignUp(
		validation.Sanitize(form.Email),
		validation.Sanitize(form.Username),
		validation.Sanitize(form.FullName),
		form.Password,
	)
	if err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{"error": signupMessage(err)})
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("user registered")

	c.HTML(http.StatusOK, "loginpage.html", gin.H{
		"success": "Account created successfully! Please log in.",
	})
}

// Login handles POST /loginpage. A fresh session is created on success;
// admins land on /admin, everyone else on /index.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "loginpage.html", gin.H{"error": msgLoginFailed})
		return
	}

	user, err := h.accounts.LogIn(validation.Sanitize(form.Email), form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "loginpage.html", gin.H{"error": loginMessage(err)})
		return
	}

	// Any session the browser held before login is discarded outright.
	h.sessions.destroy(c, middleware.CurrentSession(c))

	sess := session.NewForUser(user)
	if err := h.sessions.persist(c, sess); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to create session")
		c.HTML(http.StatusInternalServerError, "loginpage.html", gin.H{"error": msgLoginFailed})
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user logged in")

	if user.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/index")
}

// Logout handles GET /logout: the whole session goes away, including any
// meeting or reset state.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.destroy(c, middleware.CurrentSession(c))
	c.Redirect(http.StatusFound, "/loginpage")
}
