package vocabulary

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) VocabularyRepository {
	return &Repository{db: db}
}

// CreateRecord creates a new vocabulary record
func (r *Repository) CreateRecord(ctx context.Context, record *models.VocabularyRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict(record.Word)
		}
		return fmt.Errorf("creating vocabulary record: %w", err)
	}
	return nil
}

// UpdateRecord updates an existing vocabulary record
func (r *Repository) UpdateRecord(ctx context.Context, record *models.VocabularyRecord) error {
	result := r.db.WithContext(ctx).Save(record)
	if result.Error != nil {
		return fmt.Errorf("updating vocabulary record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("vocabulary record", record.Word)
	}
	return nil
}

// GetByProfileAndWord retrieves one record by its (profile, word) key
func (r *Repository) GetByProfileAndWord(ctx context.Context, profileID, word string) (*models.VocabularyRecord, error) {
	var record models.VocabularyRecord
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND word = ?", profileID, word).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vocabulary record", word)
		}
		return nil, fmt.Errorf("getting vocabulary record: %w", err)
	}
	return &record, nil
}

// ListByProfile returns one page of records plus the total count
func (r *Repository) ListByProfile(ctx context.Context, profileID string, skip, limit int) ([]models.VocabularyRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.VocabularyRecord{}).
		Where("profile_id = ?", profileID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting vocabulary records: %w", err)
	}

	var records []models.VocabularyRecord
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("word ASC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("listing vocabulary records: %w", err)
	}

	return records, total, nil
}

// ListAllByProfile returns every record for a profile, unpaged
func (r *Repository) ListAllByProfile(ctx context.Context, profileID string) ([]models.VocabularyRecord, error) {
	var records []models.VocabularyRecord
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("word ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing vocabulary records: %w", err)
	}
	return records, nil
}

// DeleteByProfileAndWord hard-deletes one record
func (r *Repository) DeleteByProfileAndWord(ctx context.Context, profileID, word string) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND word = ?", profileID, word).
		Delete(&models.VocabularyRecord{})
	if result.Error != nil {
		return fmt.Errorf("deleting vocabulary record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("vocabulary record", word)
	}
	return nil
}
