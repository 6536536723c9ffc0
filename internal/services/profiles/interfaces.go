package profiles

import (
	"context"

	"github.com/vietvoice/voicebank/internal/models"
)

// ProfileRepository defines the data access interface for voice profiles
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.VoiceProfile) error
	UpdateProfile(ctx context.Context, profile *models.VoiceProfile) error
	GetProfileByID(ctx context.Context, id string) (*models.VoiceProfile, error)
	ListProfilesByUser(ctx context.Context, userID string) ([]models.VoiceProfile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// ProfileService defines the business logic interface for voice profiles
type ProfileService interface {
	Create(ctx context.Context, userID, name, description string) (*models.VoiceProfile, error)
	Update(ctx context.Context, id, name, description string) (*models.VoiceProfile, error)
	Get(ctx context.Context, id string) (*models.VoiceProfile, error)
	ListForUser(ctx context.Context, userID string) ([]models.VoiceProfile, error)
	Delete(ctx context.Context, id string) error
}
