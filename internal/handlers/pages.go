package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/meetclone/internal/middleware"
	"github.com/thereayou/meetclone/internal/services"
)

// PageHandler serves the GET routes. Each page route re-checks the
// session state it depends on and redirects to the right earlier page
// when something is missing, instead of rendering with blanks.
type PageHandler struct {
	meetings *services.MeetingService
}

func NewPageHandler(meetings *services.MeetingService) *PageHandler {
	return &PageHandler{meetings: meetings}
}

func (h *PageHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "loginpage.html", gin.H{})
}

func (h *PageHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *PageHandler) ForgotPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{})
}

// IndexPage is the landing page after login.
func (h *PageHandler) IndexPage(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"email":    sess.Email,
		"username": sess.Username,
		"role":     sess.Role,
		"isAdmin":  sess.IsAdmin(),
	})
}

// AdminPage lists the meetings the admin has hosted.
func (h *PageHandler) AdminPage(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	meetings, err := h.meetings.HostedMeetings(sess.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", sess.UserID).Error("failed to list hosted meetings")
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"username": sess.Username,
		"meetings": meetings,
	})
}

// VerifyOTPPage requires a pending reset; otherwise back to the start of
// the flow.
func (h *PageHandler) VerifyOTPPage(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil || sess.ResetEmail == "" {
		c.Redirect(http.StatusFound, "/forgot")
		return
	}
	c.HTML(http.StatusOK, "verify_otp.html", gin.H{})
}

func (h *PageHandler) LobbyPage(c *gin.Context) {
	h.meetingStatePage(c, "lobby.html")
}

func (h *PageHandler) MeetingPage(c *gin.Context) {
	h.meetingStatePage(c, "meeting.html")
}

func (h *PageHandler) meetingStatePage(c *gin.Context, page string) {
	sess := middleware.CurrentSession(c)

	if !sess.InMeeting() {
		c.Redirect(http.StatusFound, "/index")
		return
	}

	title := sess.MeetingTitle
	if title == "" {
		title = "Meeting"
	}

	c.HTML(http.StatusOK, page, gin.H{
		"username":     sess.Username,
		"userId":       sess.UserID,
		"meetingCode":  sess.MeetingCode,
		"meetingTitle": title,
		"isHost":       sess.IsHost,
	})
}
