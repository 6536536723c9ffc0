package vocabulary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
)

// SyncReport summarizes one reconciliation of disk files against
// database records for a profile.
type SyncReport struct {
	Message        string   `json:"message"`
	TotalFiles     int      `json:"total_files"`
	UniqueFiles    int      `json:"unique_files"`
	DuplicateFiles int      `json:"duplicate_files"`
	TotalRecords   int      `json:"total_records"`
	AddedRecords   []string `json:"added_records"`
	MissingFiles   []string `json:"missing_files"`
}

// Sync walks the profile's audio directory and its vocabulary records,
// registering files that have no record and reporting records whose file
// is gone. Missing files are surfaced, never silently dropped: the
// caller decides whether to re-record or delete. Safe to repeat; a
// second run with no drift changes nothing.
func (s *Service) Sync(ctx context.Context, profileID string) (*SyncReport, error) {
	files, err := s.store.ListFiles(profileID)
	if err != nil {
		return nil, apperrors.ReconciliationError("failed to list audio files", err)
	}

	records, err := s.repository.ListAllByProfile(ctx, profileID)
	if err != nil {
		return nil, apperrors.ReconciliationError("failed to list vocabulary records", err)
	}

	// Files collapse to words case-insensitively; two files that map to
	// the same word count as duplicates and only the first registers.
	fileWords := make(map[string]string, len(files))
	duplicates := 0
	for _, f := range files {
		word := strings.ToLower(WordForFileName(f))
		if _, seen := fileWords[word]; seen {
			duplicates++
			continue
		}
		fileWords[word] = f
	}

	recorded := make(map[string]models.VocabularyRecord, len(records))
	for _, rec := range records {
		recorded[strings.ToLower(rec.Word)] = rec
	}

	report := &SyncReport{
		TotalFiles:     len(files),
		UniqueFiles:    len(fileWords),
		DuplicateFiles: duplicates,
		AddedRecords:   []string{},
		MissingFiles:   []string{},
	}

	// Register files that have no record.
	for word, fileName := range fileWords {
		if _, ok := recorded[word]; ok {
			continue
		}

		data, err := s.store.Read(profileID, fileName)
		if err != nil {
			return nil, apperrors.ReconciliationError(fmt.Sprintf("failed to read %s", fileName), err)
		}

		record := &models.VocabularyRecord{
			ProfileID: profileID,
			Word:      word,
			FileName:  fileName,
			SizeBytes: int64(len(data)),
		}
		if err := s.repository.CreateRecord(ctx, record); err != nil {
			return nil, apperrors.ReconciliationError(fmt.Sprintf("failed to register %q", word), err)
		}
		report.AddedRecords = append(report.AddedRecords, word)
		log.Printf("[INFO] Sync registered word %q from file %s for profile %s", word, fileName, profileID)
	}

	// Report records whose audio file is gone.
	for word := range recorded {
		if _, ok := fileWords[word]; !ok {
			report.MissingFiles = append(report.MissingFiles, word)
		}
	}

	report.TotalRecords = len(records) + len(report.AddedRecords)
	report.Message = fmt.Sprintf("sync complete: %d added, %d missing", len(report.AddedRecords), len(report.MissingFiles))
	return report, nil
}
