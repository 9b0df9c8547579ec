package handlers

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/thereayou/meetclone/internal/services"
)

// The user-facing texts for every failure kind a service can report. The
// typed error keeps the real cause for the log; the page only shows the
// message.

const (
	msgInvalidEmail  = "Invalid email format. Please enter a valid email address."
	msgDupEmail      = "Email already registered. Please sign in or use a different email."
	msgBadUsername   = "Invalid username. Must be 3-20 characters, start with a letter, and contain only letters, numbers, and underscores."
	msgDupUsername   = "Username already taken. Please choose a different username."
	msgWeakPassword  = "Password must be at least 8 characters and contain uppercase, lowercase, and numbers."
	msgSignupFailed  = "Registration failed. Please try again."
	msgLoginFailed   = "Login failed. Please try again."
	msgDeactivated   = "Account is deactivated. Please contact support."
	msgBadPassword   = "Invalid password. Please try again."
	msgEmailUnknown  = "Email not found. Please sign up first."
	msgNotRegistered = "Email not registered."
	msgOTPSendFailed = "Failed to send OTP. Please try again."
	msgOTPFormat     = "Invalid OTP format. Must be 6 digits."
	msgOTPWrong      = "Invalid OTP. Please try again."
	msgOTPExpired    = "OTP expired. Please request a new one."
	msgResetFailed   = "Password reset failed. Please try again."
	msgMeetingEnded  = "This meeting has ended."
	msgBadCode       = "Invalid meeting code. Please check and try again."
	msgJoinFailed    = "Failed to join meeting. Please try again."
	msgStartFailed   = "Failed to start meeting. Please try again."
)

func signupMessage(err error) string {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "username" {
			return msgBadUsername
		}
		return msgInvalidEmail
	case errors.Is(err, services.ErrDuplicateEmail):
		return msgDupEmail
	case errors.Is(err, services.ErrDuplicateUsername):
		return msgDupUsername
	case errors.Is(err, services.ErrWeakPassword):
		return msgWeakPassword
	default:
		logrus.WithError(err).Error("signup failed")
		return msgSignupFailed
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		return "Invalid email format."
	case errors.Is(err, services.ErrDeactivated):
		return msgDeactivated
	case errors.Is(err, services.ErrBadCredential):
		return msgBadPassword
	case errors.Is(err, services.ErrNotFound):
		return msgEmailUnknown
	default:
		logrus.WithError(err).Error("login failed")
		return msgLoginFailed
	}
}
