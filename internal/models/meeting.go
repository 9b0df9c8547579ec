package models

import (
	"github.com/google/uuid"
	"time"
)

type Meeting struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"not null"`
	MeetingCode string    `gorm:"uniqueIndex;not null"`
	HostUserID  uuid.UUID `gorm:"type:uuid;not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}
