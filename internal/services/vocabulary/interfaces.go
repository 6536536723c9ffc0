package vocabulary

import (
	"context"

	"github.com/vietvoice/voicebank/internal/models"
)

// VocabularyRepository defines the data access interface for vocabulary records
type VocabularyRepository interface {
	// Create/Update
	CreateRecord(ctx context.Context, record *models.VocabularyRecord) error
	UpdateRecord(ctx context.Context, record *models.VocabularyRecord) error

	// Read
	GetByProfileAndWord(ctx context.Context, profileID, word string) (*models.VocabularyRecord, error)
	ListByProfile(ctx context.Context, profileID string, skip, limit int) ([]models.VocabularyRecord, int64, error)
	ListAllByProfile(ctx context.Context, profileID string) ([]models.VocabularyRecord, error)

	// Delete (hard delete so the word can be re-added later)
	DeleteByProfileAndWord(ctx context.Context, profileID, word string) error
}

// AudioStore persists the per-word WAV assets on disk.
type AudioStore interface {
	Save(profileID, fileName string, data []byte) (int64, error)
	Read(profileID, fileName string) ([]byte, error)
	Delete(profileID, fileName string) error

	// ListFiles returns every stored file name for the profile, in
	// lexical order, including duplicates-by-word only once (the store
	// keys by file name).
	ListFiles(profileID string) ([]string, error)
}

// VocabularyService defines the business logic interface for vocabulary operations
type VocabularyService interface {
	List(ctx context.Context, profileID string, skip, limit int) ([]models.VocabularyRecord, int64, error)

	// Add stores audio for a word. When the word already exists and
	// overwrite is false, Add reports exists=true and changes nothing.
	Add(ctx context.Context, profileID, word string, audio []byte, overwrite bool) (*models.VocabularyRecord, bool, error)

	Delete(ctx context.Context, profileID, word string) error
	Audio(ctx context.Context, profileID, word string) ([]byte, error)

	// Sync reconciles the on-disk audio files against the database
	// records for the profile.
	Sync(ctx context.Context, profileID string) (*SyncReport, error)
}
