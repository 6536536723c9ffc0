package vocabulary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
)

// memoryRepository is a map-backed VocabularyRepository for sync tests,
// where the mutation sequence matters more than call expectations.
type memoryRepository struct {
	records map[string]*models.VocabularyRecord
	nextID  uint
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: make(map[string]*models.VocabularyRecord)}
}

func (r *memoryRepository) key(profileID, word string) string { return profileID + "/" + word }

func (r *memoryRepository) CreateRecord(ctx context.Context, record *models.VocabularyRecord) error {
	k := r.key(record.ProfileID, record.Word)
	if _, ok := r.records[k]; ok {
		return apperrors.Conflict(record.Word)
	}
	r.nextID++
	record.ID = r.nextID
	r.records[k] = record
	return nil
}

func (r *memoryRepository) UpdateRecord(ctx context.Context, record *models.VocabularyRecord) error {
	r.records[r.key(record.ProfileID, record.Word)] = record
	return nil
}

func (r *memoryRepository) GetByProfileAndWord(ctx context.Context, profileID, word string) (*models.VocabularyRecord, error) {
	rec, ok := r.records[r.key(profileID, word)]
	if !ok {
		return nil, apperrors.NotFound("vocabulary record", word)
	}
	return rec, nil
}

func (r *memoryRepository) ListByProfile(ctx context.Context, profileID string, skip, limit int) ([]models.VocabularyRecord, int64, error) {
	all, _ := r.ListAllByProfile(ctx, profileID)
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *memoryRepository) ListAllByProfile(ctx context.Context, profileID string) ([]models.VocabularyRecord, error) {
	var out []models.VocabularyRecord
	for _, rec := range r.records {
		if rec.ProfileID == profileID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryRepository) DeleteByProfileAndWord(ctx context.Context, profileID, word string) error {
	k := r.key(profileID, word)
	if _, ok := r.records[k]; !ok {
		return apperrors.NotFound("vocabulary record", word)
	}
	delete(r.records, k)
	return nil
}

func TestSyncRegistersOrphanFiles(t *testing.T) {
	repo := newMemoryRepository()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(repo, store)

	// A file on disk with no matching record.
	_, err = store.Save("p1", "chào.wav", validAudio(t))
	require.NoError(t, err)

	report, err := svc.Sync(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalFiles)
	assert.Equal(t, 1, report.UniqueFiles)
	assert.Zero(t, report.DuplicateFiles)
	assert.Equal(t, []string{"chào"}, report.AddedRecords)
	assert.Empty(t, report.MissingFiles)
	assert.Equal(t, 1, report.TotalRecords)

	rec, err := repo.GetByProfileAndWord(context.Background(), "p1", "chào")
	require.NoError(t, err)
	assert.Equal(t, "chào.wav", rec.FileName)
}

func TestSyncReportsMissingFiles(t *testing.T) {
	repo := newMemoryRepository()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(repo, store)

	require.NoError(t, repo.CreateRecord(context.Background(), &models.VocabularyRecord{
		ProfileID: "p1", Word: "mất", FileName: "mất.wav",
	}))

	report, err := svc.Sync(context.Background(), "p1")
	require.NoError(t, err)

	// The inconsistency is surfaced; the record is not deleted.
	assert.Equal(t, []string{"mất"}, report.MissingFiles)
	assert.Empty(t, report.AddedRecords)
	_, err = repo.GetByProfileAndWord(context.Background(), "p1", "mất")
	require.NoError(t, err)
}

func TestSyncIsIdempotent(t *testing.T) {
	repo := newMemoryRepository()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(repo, store)

	_, err = store.Save("p1", "một.wav", validAudio(t))
	require.NoError(t, err)
	_, err = store.Save("p1", "hai.wav", validAudio(t))
	require.NoError(t, err)

	first, err := svc.Sync(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, first.AddedRecords, 2)

	second, err := svc.Sync(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, second.AddedRecords)
	assert.Equal(t, 2, second.TotalRecords)
}

func TestSyncCountsDuplicateFiles(t *testing.T) {
	repo := newMemoryRepository()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(repo, store)

	// Two file names collapsing to the same word, case-insensitively.
	_, err = store.Save("p1", "Xin_chào.wav", validAudio(t))
	require.NoError(t, err)
	_, err = store.Save("p1", "xin_chào.wav", validAudio(t))
	require.NoError(t, err)

	report, err := svc.Sync(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 1, report.UniqueFiles)
	assert.Equal(t, 1, report.DuplicateFiles)
	assert.Equal(t, []string{"xin chào"}, report.AddedRecords)
}

func TestFileNameRoundTrip(t *testing.T) {
	assert.Equal(t, "xin_chào.wav", FileNameForWord("xin chào"))
	assert.Equal(t, "xin chào", WordForFileName("xin_chào.wav"))
	assert.Equal(t, "chào.wav", FileNameForWord("chào"))
}
