package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileHistory records one onboarding write against a health profile.
type ProfileHistory struct {
	gorm.Model
	UserID    uuid.UUID `gorm:"type:varchar(36);index;not null"`
	Step      int       `gorm:"not null"`
	Version   int       `gorm:"not null"` // profile version after the write
	OldValue  string    `gorm:"type:text"`
	NewValue  string    `gorm:"type:text"`
	ChangedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProfileHistory
func (ProfileHistory) TableName() string {
	return "profile_history"
}
