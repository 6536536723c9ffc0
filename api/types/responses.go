package types

import "github.com/vietvoice/voicebank/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProfilesResponse for profile lists
type ProfilesResponse struct {
	BaseResponse
	Profiles []models.VoiceProfile `json:"profiles"`
	Count    int                   `json:"count"`
}

// SingleProfileResponse for getting one profile
type SingleProfileResponse struct {
	BaseResponse
	Profile *models.VoiceProfile `json:"profile"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
