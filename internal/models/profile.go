package models

import (
	"time"

	"gorm.io/gorm"
)

// VoiceProfile is a named container scoping one user's vocabulary records.
type VoiceProfile struct {
	ID          string         `gorm:"primarykey;size:36" json:"id"`
	UserID      string         `gorm:"index;size:36" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for VoiceProfile
func (VoiceProfile) TableName() string {
	return "voice_profiles"
}
