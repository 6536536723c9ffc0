package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vietvoice/voicebank/internal/models"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
)

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateProfile(ctx context.Context, profile *models.VoiceProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile *models.VoiceProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.VoiceProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoiceProfile), args.Error(1)
}

func (m *MockProfileRepository) ListProfilesByUser(ctx context.Context, userID string) ([]models.VoiceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VoiceProfile), args.Error(1)
}

func (m *MockProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateProfile(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *models.VoiceProfile) bool {
		return p.ID != "" && p.UserID == "u1" && p.Name == "Giọng miền Bắc"
	})).Return(nil)

	svc := NewService(repo)

	profile, err := svc.Create(context.Background(), "u1", "  Giọng miền Bắc  ", "northern voice")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Giọng miền Bắc", profile.Name)

	repo.AssertExpectations(t)
}

func TestCreateProfileValidation(t *testing.T) {
	svc := NewService(new(MockProfileRepository))
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "   ", "")
	assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))

	_, err = svc.Create(ctx, "", "voice", "")
	assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))
}

func TestUpdateProfile(t *testing.T) {
	existing := &models.VoiceProfile{ID: "p1", UserID: "u1", Name: "old"}

	repo := new(MockProfileRepository)
	repo.On("GetProfileByID", mock.Anything, "p1").Return(existing, nil)
	repo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *models.VoiceProfile) bool {
		return p.Name == "new name"
	})).Return(nil)

	svc := NewService(repo)

	profile, err := svc.Update(context.Background(), "p1", "new name", "")
	require.NoError(t, err)
	assert.Equal(t, "new name", profile.Name)
	repo.AssertExpectations(t)
}

func TestUpdateUnknownProfile(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("GetProfileByID", mock.Anything, "missing").
		Return(nil, apperrors.NotFound("voice profile", "missing"))

	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "missing", "name", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestListForUserRequiresUserID(t *testing.T) {
	svc := NewService(new(MockProfileRepository))

	_, err := svc.ListForUser(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))
}
