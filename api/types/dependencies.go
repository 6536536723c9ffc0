package types

import (
	"github.com/vietvoice/voicebank/internal/database"
	"github.com/vietvoice/voicebank/internal/services/profiles"
	"github.com/vietvoice/voicebank/internal/services/speech"
	"github.com/vietvoice/voicebank/internal/services/vocabulary"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	ProfileService    profiles.ProfileService
	VocabularyService vocabulary.VocabularyService
	SpeechService     *speech.Service
}
