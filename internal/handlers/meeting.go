package handlers

import (
	"errors"
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

type MeetingHandler struct {
	meetings *services.MeetingService
	sessions sessionWriter
}

func NewMeetingHandler(meetings *services.MeetingService, store session.Store, tokens *auth.TokenManager, sessionTTL time.Duration) *MeetingHandler {
	return &MeetingHandler{
		meetings: meetings,
		sessions: newSessionWriter(store, tokens, sessionTTL),
	}
}

// indexWithError re-renders the landing page with a message, keeping the
// session fields the template expects.
func (h *MeetingHandler) indexWithError(c *gin.Context, sess *session.Session, msg string) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"email":    sess.Email,
		"username": sess.Username,
		"role":     sess.Role,
		"isAdmin":  sess.IsAdmin(),
		"error":    msg,
	})
}

// StartMeeting handles POST /startMeeting: create an active meeting with
// a generated code and move the session into it as host.
func (h *MeetingHandler) StartMeeting(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form dto.StartMeetingForm
	if err := c.ShouldBind(&form); err != nil {
		h.indexWithError(c, sess, msgStartFailed)
		return
	}

	title := validation.Sanitize(form.MeetingName)

	meeting, err := h.meetings.StartMeeting(title, sess.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", sess.UserID).Error("failed to start meeting")
		h.indexWithError(c, sess, msgStartFailed)
		return
	}

	sess.EnterMeeting(meeting, title, true)
	if err := h.sessions.persist(c, sess); err != nil {
		logrus.WithError(err).Error("failed to update session")
		h.indexWithError(c, sess, msgStartFailed)
		return
	}

	logrus.WithFields(logrus.Fields{
		"meeting_id":   meeting.ID,
		"meeting_code": meeting.MeetingCode,
		"host_user_id": sess.UserID,
	}).Info("meeting started")

	c.Redirect(http.StatusFound, "/lobby")
}

// JoinMeeting handles POST /joinMeeting: resolve the code to an active
// meeting and move the session into it as a guest.
func (h *MeetingHandler) JoinMeeting(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form dto.JoinMeetingForm
	if err := c.ShouldBind(&form); err != nil {
		h.indexWithError(c, sess, msgBadCode)
		return
	}

	displayName := validation.Sanitize(form.YourName)
	code := validation.Sanitize(form.MeetingCode)

	meeting, err := h.meetings.JoinMeeting(code)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrMeetingEnded):
		h.indexWithError(c, sess, msgMeetingEnded)
		return
	case errors.Is(err, services.ErrNotFound):
		h.indexWithError(c, sess, msgBadCode)
		return
	default:
		logrus.WithError(err).WithField("meeting_code", code).Error("failed to join meeting")
		h.indexWithError(c, sess, msgJoinFailed)
		return
	}

	sess.EnterMeeting(meeting, displayName, false)
	if err := h.sessions.persist(c, sess); err != nil {
		logrus.WithError(err).Error("failed to update session")
		h.indexWithError(c, sess, msgJoinFailed)
		return
	}

	c.Redirect(http.StatusFound, "/lobby")
}

// EndMeeting handles POST /endMeeting. Only the host can end the meeting;
// a guest just leaves it. Ending twice is a no-op.
func (h *MeetingHandler) EndMeeting(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	if !sess.InMeeting() {
		c.Redirect(http.StatusFound, "/index")
		return
	}

	if sess.IsHost {
		if err := h.meetings.EndMeetingByHost(sess.MeetingID, sess.UserID); err != nil && !errors.Is(err, services.ErrNotFound) {
			logrus.WithError(err).WithField("meeting_id", sess.MeetingID).Error("failed to end meeting")
		}
	}

	sess.LeaveMeeting()
	if err := h.sessions.persist(c, sess); err != nil {
		logrus.WithError(err).Error("failed to update session")
	}

	c.Redirect(http.StatusFound, "/index")
}
