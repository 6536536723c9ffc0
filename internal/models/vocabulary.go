package models

import (
	"time"
)

// VocabularyRecord maps a (profile, word) pair to a stored audio asset.
// Words are stored lowercase; the audio file lives under the profile's
// audio directory as <word>.wav. Deletes are hard deletes so a removed
// word can be re-recorded without tripping the unique index.
type VocabularyRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProfileID string    `gorm:"uniqueIndex:idx_profile_word;size:36" json:"profile_id"`
	Word      string    `gorm:"uniqueIndex:idx_profile_word;size:255" json:"word"`
	FileName  string    `gorm:"size:255" json:"-"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for VocabularyRecord
func (VocabularyRecord) TableName() string {
	return "vocabulary_records"
}
