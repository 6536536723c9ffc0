package vocabulary

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
	"github.com/youpy/go-wav"
)

type Service struct {
	repository VocabularyRepository
	store      AudioStore
}

func NewService(repository VocabularyRepository, store AudioStore) VocabularyService {
	return &Service{
		repository: repository,
		store:      store,
	}
}

// List returns one page of the profile's vocabulary plus the total count.
func (s *Service) List(ctx context.Context, profileID string, skip, limit int) ([]models.VocabularyRecord, int64, error) {
	return s.repository.ListByProfile(ctx, profileID, skip, limit)
}

// Add stores audio for a word. Words are keyed lowercase; overwriting an
// existing word replaces its audio asset irreversibly, so when overwrite
// is false an existing word is reported back untouched with exists=true.
func (s *Service) Add(ctx context.Context, profileID, word string, audio []byte, overwrite bool) (*models.VocabularyRecord, bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, false, apperrors.MissingFieldError("word")
	}
	if len(audio) == 0 {
		return nil, false, apperrors.EmptyRecording(word)
	}
	if err := validateWAV(audio); err != nil {
		return nil, false, err
	}

	existing, err := s.repository.GetByProfileAndWord(ctx, profileID, word)
	if err != nil && !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		return nil, false, err
	}

	if existing != nil && !overwrite {
		return existing, true, nil
	}

	fileName := FileNameForWord(word)
	size, err := s.store.Save(profileID, fileName, audio)
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to store audio file")
	}

	if existing != nil {
		existing.FileName = fileName
		existing.SizeBytes = size
		if err := s.repository.UpdateRecord(ctx, existing); err != nil {
			return nil, false, err
		}
		log.Printf("[INFO] Replaced audio for word %q in profile %s", word, profileID)
		return existing, false, nil
	}

	record := &models.VocabularyRecord{
		ProfileID: profileID,
		Word:      word,
		FileName:  fileName,
		SizeBytes: size,
	}
	if err := s.repository.CreateRecord(ctx, record); err != nil {
		return nil, false, err
	}
	return record, false, nil
}

// Delete removes the record and its audio file.
func (s *Service) Delete(ctx context.Context, profileID, word string) error {
	word = strings.ToLower(strings.TrimSpace(word))

	record, err := s.repository.GetByProfileAndWord(ctx, profileID, word)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteByProfileAndWord(ctx, profileID, word); err != nil {
		return err
	}

	if err := s.store.Delete(profileID, record.FileName); err != nil {
		// The record is gone; a stranded file is repaired by the next sync.
		log.Printf("[WARN] Failed to delete audio file %s for profile %s: %v", record.FileName, profileID, err)
	}
	return nil
}

// Audio returns the stored WAV bytes for a word.
func (s *Service) Audio(ctx context.Context, profileID, word string) ([]byte, error) {
	word = strings.ToLower(strings.TrimSpace(word))

	record, err := s.repository.GetByProfileAndWord(ctx, profileID, word)
	if err != nil {
		return nil, err
	}

	data, err := s.store.Read(profileID, record.FileName)
	if err != nil {
		if err == os.ErrNotExist {
			return nil, apperrors.NotFound("vocabulary audio", word)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorage, "failed to read audio file")
	}
	return data, nil
}

// validateWAV rejects payloads that do not parse as WAV audio.
func validateWAV(data []byte) error {
	reader := wav.NewReader(bytes.NewReader(data))
	format, err := reader.Format()
	if err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("audio payload is not valid WAV: %v", err))
	}
	if format.SampleRate == 0 || format.NumChannels == 0 {
		return apperrors.InvalidInput("audio payload has an empty WAV format header")
	}
	return nil
}
