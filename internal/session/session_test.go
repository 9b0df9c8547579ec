package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/meetclone/internal/models"
	"github.com/thereayou/meetclone/internal/session"
)

func TestNewForUser(t *testing.T) {
	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@b.com",
		Username: "alice",
		FullName: "Alice",
		Role:     models.RoleAdmin,
	}

	sess := session.NewForUser(user)

	require.NotEmpty(t, sess.ID)
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "alice", sess.Username)
	assert.True(t, sess.IsAdmin())

	// A fresh login must never carry meeting or reset state.
	assert.False(t, sess.InMeeting())
	assert.Empty(t, sess.ResetEmail)
	assert.Nil(t, sess.OTPIssuedAt)
}

func TestEnterAndLeaveMeeting(t *testing.T) {
	sess := session.NewForUser(&models.User{ID: uuid.New()})
	meeting := &models.Meeting{
		ID:          uuid.New(),
		MeetingCode: "abc-1F2E3D",
	}

	sess.EnterMeeting(meeting, "Standup", true)
	assert.True(t, sess.InMeeting())
	assert.Equal(t, meeting.ID, sess.MeetingID)
	assert.Equal(t, "abc-1F2E3D", sess.MeetingCode)
	assert.Equal(t, "Standup", sess.MeetingTitle)
	assert.True(t, sess.IsHost)

	sess.LeaveMeeting()
	assert.False(t, sess.InMeeting())
	assert.Equal(t, uuid.Nil, sess.MeetingID)
	assert.Empty(t, sess.MeetingTitle)
	assert.False(t, sess.IsHost)
}

func TestResetLifecycle(t *testing.T) {
	sess := session.NewAnonymous()
	require.NotEmpty(t, sess.ID)
	assert.False(t, sess.IsLoggedIn)

	issued := time.Now()
	sess.BeginReset("a@b.com", "123456", issued)
	assert.Equal(t, "a@b.com", sess.ResetEmail)
	assert.Equal(t, "123456", sess.ResetOTP)
	require.NotNil(t, sess.OTPIssuedAt)

	// After OTP verification the code is gone but the email stays for the
	// final reset step.
	sess.ClearOTP()
	assert.Empty(t, sess.ResetOTP)
	assert.Nil(t, sess.OTPIssuedAt)
	assert.Equal(t, "a@b.com", sess.ResetEmail)

	sess.ClearReset()
	assert.Empty(t, sess.ResetEmail)
}
