package server

import (
	"github.com/gin-gonic/gin"

	"github.com/thereayou/meetclone/internal/handlers"
	"github.com/thereayou/meetclone/internal/middleware"
)

// PageEndpoints wires the full route surface. GET routes render pages,
// POST routes mutate and redirect (or re-render with a message).
func PageEndpoints(r *gin.Engine, pageH *handlers.PageHandler, authH *handlers.AuthHandler, resetH *handlers.ResetHandler, meetingH *handlers.MeetingHandler) {
	// Anonymous pages
	r.GET("/", pageH.LoginPage)
	r.GET("/loginpage", pageH.LoginPage)
	r.GET("/signup", pageH.SignupPage)
	r.GET("/forgot", pageH.ForgotPasswordPage)
	r.GET("/verify-otp", pageH.VerifyOTPPage)
	r.GET("/logout", authH.Logout)

	r.POST("/signup", authH.Register)
	r.POST("/loginpage", authH.Login)
	r.POST("/forgot-password", resetH.ForgotPassword)
	r.POST("/verify-otp", resetH.VerifyOTP)
	r.POST("/reset-password", resetH.ResetPassword)

	// Pages that need a login
	loggedIn := r.Group("/", middleware.RequireLogin())
	{
		loggedIn.GET("/index", pageH.IndexPage)
		loggedIn.GET("/lobby", pageH.LobbyPage)
		loggedIn.GET("/meeting", pageH.MeetingPage)

		loggedIn.POST("/startMeeting", meetingH.StartMeeting)
		loggedIn.POST("/joinMeeting", meetingH.JoinMeeting)
		loggedIn.POST("/endMeeting", meetingH.EndMeeting)
	}

	admin := r.Group("/", middleware.RequireLogin(), middleware.RequireAdmin())
	{
		admin.GET("/admin", pageH.AdminPage)
	}
}
