package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
)

type Service struct {
	repository ProfileRepository
}

func NewService(repository ProfileRepository) ProfileService {
	return &Service{repository: repository}
}

// Create registers a new voice profile for a user.
func (s *Service) Create(ctx context.Context, userID, name, description string) (*models.VoiceProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingFieldError("name")
	}
	if userID == "" {
		return nil, apperrors.MissingFieldError("user_id")
	}

	profile := &models.VoiceProfile{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.repository.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update renames a profile or changes its description.
func (s *Service) Update(ctx context.Context, id, name, description string) (*models.VoiceProfile, error) {
	profile, err := s.repository.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		profile.Name = name
	}
	if description != "" {
		profile.Description = description
	}

	if err := s.repository.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get fetches one profile by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.VoiceProfile, error) {
	return s.repository.GetProfileByID(ctx, id)
}

// ListForUser returns the user's profiles.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.VoiceProfile, error) {
	if userID == "" {
		return nil, apperrors.MissingFieldError("user_id")
	}
	return s.repository.ListProfilesByUser(ctx, userID)
}

// Delete removes a profile. Its vocabulary records and audio remain
// until cleaned up separately.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repository.DeleteProfile(ctx, id)
}
