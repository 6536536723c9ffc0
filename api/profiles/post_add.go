package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// PostAdd creates a voice profile
// POST /api/v1/profiles
// Body: {"user_id": "...", "name": "...", "description": "..."}
func PostAdd(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			UserID      string `json:"user_id" binding:"required"`
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
		}
		if !types.BindJSONOrError(c, &request) {
			return
		}

		profile, err := deps.ProfileService.Create(c.Request.Context(), request.UserID, request.Name, request.Description)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendCreated(c, types.SingleProfileResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "profile created"},
			Profile:      profile,
		})
	}
}
