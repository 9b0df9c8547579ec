// Package session keeps per-browser state in redis: who is logged in,
// which meeting they are in, and the transient password-reset fields.
// The whole struct is written and cleared atomically at each transition
// instead of accreting attributes one by one.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/meetclone/internal/models"
)

type Session struct {
	ID         string    `json:"id"`
	IsLoggedIn bool      `json:"is_logged_in"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`

	// Populated by a successful start/join, cleared when the meeting ends.
	MeetingID    uuid.UUID `json:"meeting_id"`
	MeetingCode  string    `json:"meeting_code"`
	MeetingTitle string    `json:"meeting_title"`
	IsHost       bool      `json:"is_host"`

	// Password-reset flow. Only meaningful between forgot-password and
	// reset-password.
	ResetEmail  string     `json:"reset_email"`
	ResetOTP    string     `json:"reset_otp"`
	OTPIssuedAt *time.Time `json:"otp_issued_at"`
}

// NewForUser builds a fresh logged-in session seeded from the user row.
// Logging in always starts from a clean session, so meeting or reset
// state can never leak across logins.
func NewForUser(user *models.User) *Session {
	return &Session{
		ID:         uuid.NewString(),
		IsLoggedIn: true,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
	}
}

// NewAnonymous is used by the password-reset flow, which runs without a
// login.
func NewAnonymous() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) InMeeting() bool {
	return s.MeetingCode != ""
}

func (s *Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// EnterMeeting records the meeting the session is attached to. title is
// whatever should show on the lobby page: the meeting name for the host,
// the display name the joiner typed for a guest.
func (s *Session) EnterMeeting(meeting *models.Meeting, title string, isHost bool) {
	s.MeetingID = meeting.ID
	s.MeetingCode = meeting.MeetingCode
	s.MeetingTitle = title
	s.IsHost = isHost
}

func (s *Session) LeaveMeeting() {
	s.MeetingID = uuid.Nil
	s.MeetingCode = ""
	s.MeetingTitle = ""
	s.IsHost = false
}

func (s *Session) BeginReset(email, otp string, issuedAt time.Time) {
	s.ResetEmail = email
	s.ResetOTP = otp
	s.OTPIssuedAt = &issuedAt
}

// ClearOTP drops the code but keeps ResetEmail: reset-password still has
// to check the form email against the one the OTP was verified for.
func (s *Session) ClearOTP() {
	s.ResetOTP = ""
	s.OTPIssuedAt = nil
}

func (s *Session) ClearReset() {
	s.ResetEmail = ""
	s.ResetOTP = ""
	s.OTPIssuedAt = nil
}
