package profiles

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

func NewRepository(db *gorm.DB) ProfileRepository {
	return &Repository{db: db}
}

// CreateProfile creates a new voice profile
func (r *Repository) CreateProfile(ctx context.Context, profile *models.VoiceProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("creating voice profile: %w", err)
	}
	return nil
}

// UpdateProfile updates an existing voice profile
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.VoiceProfile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return fmt.Errorf("updating voice profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("voice profile", profile.ID)
	}
	return nil
}

// GetProfileByID retrieves a profile by its identifier
func (r *Repository) GetProfileByID(ctx context.Context, id string) (*models.VoiceProfile, error) {
	var profile models.VoiceProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("voice profile", id)
		}
		return nil, fmt.Errorf("getting voice profile: %w", err)
	}
	return &profile, nil
}

// ListProfilesByUser returns the user's profiles, newest first
func (r *Repository) ListProfilesByUser(ctx context.Context, userID string) ([]models.VoiceProfile, error) {
	var profiles []models.VoiceProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("listing voice profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile soft-deletes a profile
func (r *Repository) DeleteProfile(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.VoiceProfile{})
	if result.Error != nil {
		return fmt.Errorf("deleting voice profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("voice profile", id)
	}
	return nil
}
