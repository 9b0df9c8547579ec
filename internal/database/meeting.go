package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/meetclone/internal/models"
)

func (d *Database) SaveMeeting(meeting *models.Meeting) error {
	if err := d.db.Create(meeting).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (d *Database) UpdateMeeting(meeting *models.Meeting) error {
	return d.db.Save(meeting).Error
}

func (d *Database) GetMeeting(id uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := d.db.First(&meeting, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

func (d *Database) FindMeetingByCode(code string) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := d.db.Where("meeting_code = ?", code).First(&meeting).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// FindMeetingByIDAndHost is the ownership check behind host-only actions
// such as ending a meeting.
func (d *Database) FindMeetingByIDAndHost(id, hostUserID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	err := d.db.Where("id = ? AND host_user_id = ?", id, hostUserID).First(&meeting).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

func (d *Database) ListMeetingsByHost(hostUserID uuid.UUID) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := d.db.Where("host_user_id = ?", hostUserID).Order("created_at DESC").Find(&meetings).Error
	return meetings, err
}
