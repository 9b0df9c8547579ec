package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/meetclone/internal/database"
	"github.com/thereayou/meetclone/internal/models"
)

// MeetingStore is the slice of the database layer the meeting service needs.
type MeetingStore interface {
	SaveMeeting(meeting *models.Meeting) error
	GetMeeting(id uuid.UUID) (*models.Meeting, error)
	FindMeetingByCode(code string) (*models.Meeting, error)
	FindMeetingByIDAndHost(id, hostUserID uuid.UUID) (*models.Meeting, error)
	ListMeetingsByHost(hostUserID uuid.UUID) ([]models.Meeting, error)
	UpdateMeeting(meeting *models.Meeting) error
}

type MeetingService struct {
	meetings MeetingStore
	now      func() time.Time
}

func NewMeetingService(meetings MeetingStore) *MeetingService {
	return &MeetingService{meetings: meetings, now: time.Now}
}

// GenerateMeetingCode builds the shareable code for a new meeting:
// the host's id, a dash, and the current unix millis in uppercase hex.
func GenerateMeetingCode(hostUserID uuid.UUID, at time.Time) string {
	millis := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 16))
	return fmt.Sprintf("%s-%s", hostUserID, millis)
}

// StartMeeting creates an active meeting owned by hostUserID.
func (s *MeetingService) StartMeeting(title string, hostUserID uuid.UUID) (*models.Meeting, error) {
	meeting := &models.Meeting{
		Title:       title,
		MeetingCode: GenerateMeetingCode(hostUserID, s.now()),
		HostUserID:  hostUserID,
		IsActive:    true,
		CreatedAt:   s.now(),
	}

	if err := s.meetings.SaveMeeting(meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// JoinMeeting resolves a code to an active meeting.
func (s *MeetingService) JoinMeeting(code string) (*models.Meeting, error) {
	meeting, err := s.meetings.FindMeetingByCode(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !meeting.IsActive {
		return nil, ErrMeetingEnded
	}

	return meeting, nil
}

// EndMeeting flips the meeting inactive. Ending an already-ended meeting
// is a no-op.
func (s *MeetingService) EndMeeting(id uuid.UUID) error {
	meeting, err := s.meetings.GetMeeting(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !meeting.IsActive {
		return nil
	}

	meeting.IsActive = false
	return s.meetings.UpdateMeeting(meeting)
}

// EndMeetingByHost is EndMeeting with an ownership check: only the host
// that started the meeting may end it.
func (s *MeetingService) EndMeetingByHost(id, hostUserID uuid.UUID) error {
	meeting, err := s.meetings.FindMeetingByIDAndHost(id, hostUserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !meeting.IsActive {
		return nil
	}

	meeting.IsActive = false
	return s.meetings.UpdateMeeting(meeting)
}

// HostedMeetings lists the meetings a user has started, newest first.
func (s *MeetingService) HostedMeetings(hostUserID uuid.UUID) ([]models.Meeting, error) {
	return s.meetings.ListMeetingsByHost(hostUserID)
}
