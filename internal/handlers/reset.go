package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/meetclone/internal/handlers/dto"
	"github.com/thereayou/meetclone/internal/mailer"
	"github.com/thereayou/meetclone/internal/middleware"
	"github.com/thereayou/meetclone/internal/services"
	"github.com/thereayou/meetclone/internal/session"
	"github.com/thereayou/meetclone/internal/validation"
	"github.com/thereayou/meetclone/pkg/auth"
)

// ResetHandler drives the three-step password-reset flow:
// forgot-password issues an OTP, verify-otp checks it, reset-password
// overwrites the credential. The flow state lives in the session.
type ResetHandler struct {
	accounts *services.AccountService
	mail     mailer.Mailer
	sessions sessionWriter
}

func NewResetHandler(accounts *services.AccountService, mail mailer.Mailer, store session.Store, tokens *auth.TokenManager, sessionTTL time.Duration) *ResetHandler {
	return &ResetHandler{
		accounts: accounts,
		mail:     mail,
		sessions: newSessionWriter(store, tokens, sessionTTL),
	}
}

// ForgotPassword handles POST /forgot-password.
func (h *ResetHandler) ForgotPassword(c *gin.Context) {
	var form dto.ForgotPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "forgot_password.html", gin.H{"error": "Invalid email format."})
		return
	}

	email := validation.NormalizeEmail(validation.Sanitize(form.Email))

	otp, issuedAt, err := h.accounts.RequestPasswordReset(email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFormat):
			c.HTML(http.StatusOK, "forgot_password.html", gin.H{"error": "Invalid email format."})
		case errors.Is(err, services.ErrNotFound):
			c.HTML(http.StatusOK, "forgot_password.html", gin.H{"error": msgNotRegistered})
		default:
			logrus.WithError(err).Error("password reset request failed")
			c.HTML(http.StatusOK, "forgot_password.html", gin.H{"error": msgOTPSendFailed})
		}
		return
	}

	sess := middleware.CurrentSession(c)
	if sess == nil {
		sess = session.NewAnonymous()
	}
	sess.BeginReset(email, otp, issuedAt)

	if err := h.sessions.persist(c, sess); err != nil {
		logrus.WithError(err).Error("failed to store reset state")
		c.HTML(http.StatusInternalServerError, "forgot_password.html", gin.H{"error": msgOTPSendFailed})
		return
	}

	if err := h.mail.SendOTP(c.Request.Context(), email, otp); err != nil {
		c.HTML(http.StatusOK, "forgot_password.html", gin.H{"error": msgOTPSendFailed})
		return
	}

	c.Redirect(http.StatusFound, "/verify-otp")
}

// VerifyOTP handles POST /verify-otp.
func (h *ResetHandler) VerifyOTP(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil || sess.ResetEmail == "" || sess.ResetOTP == "" || sess.OTPIssuedAt == nil {
		c.Redirect(http.StatusFound, "/forgot")
		return
	}

	var form dto.VerifyOTPForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "verify_otp.html", gin.H{"error": msgOTPFormat})
		return
	}

	err := h.accounts.VerifyOTP(form.OTP, sess.ResetOTP, *sess.OTPIssuedAt, time.Now())
	switch {
	case err == nil:
		// Code accepted; drop it so it cannot be replayed, keep the email
		// for the final reset step.
		sess.ClearOTP()
		if err := h.sessions.persist(c, sess); err != nil {
			logrus.WithError(err).Error("failed to update reset state")
		}
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"email":   sess.ResetEmail,
			"success": "OTP verified! You can now reset your password.",
		})
	case errors.Is(err, services.ErrExpired):
		sess.ClearOTP()
		if err := h.sessions.persist(c, sess); err != nil {
			logrus.WithError(err).Error("failed to update reset state")
		}
		c.Redirect(http.StatusFound, "/forgot")
	case errors.Is(err, services.ErrInvalidFormat):
		c.HTML(http.StatusOK, "verify_otp.html", gin.H{"error": msgOTPFormat})
	case errors.Is(err, services.ErrMismatch):
		c.HTML(http.StatusOK, "verify_otp.html", gin.H{"error": msgOTPWrong})
	default:
		logrus.WithError(err).Error("otp verification failed")
		c.HTML(http.StatusOK, "verify_otp.html", gin.H{"error": msgOTPWrong})
	}
}

// ResetPassword handles POST /reset-password.
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	sessionEmail := ""
	if sess != nil {
		sessionEmail = sess.ResetEmail
	}

	var form dto.ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/forgot")
		return
	}

	email := validation.NormalizeEmail(validation.Sanitize(form.Email))

	err := h.accounts.ResetPassword(email, sessionEmail, form.NewPassword)
	switch {
	case err == nil:
		sess.ClearReset()
		if err := h.sessions.persist(c, sess); err != nil {
			logrus.WithError(err).Error("failed to clear reset state")
		}
		logrus.WithField("email", email).Info("password reset completed")
		c.Redirect(http.StatusFound, "/loginpage")
	case errors.Is(err, services.ErrSessionMismatch):
		c.Redirect(http.StatusFound, "/forgot")
	case errors.Is(err, services.ErrWeakPassword):
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"email": email,
			"error": msgWeakPassword,
		})
	case errors.Is(err, services.ErrNotFound):
		c.Redirect(http.StatusFound, "/loginpage")
	default:
		logrus.WithError(err).Error("password reset failed")
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"email": email,
			"error": msgResetFailed,
		})
	}
}
