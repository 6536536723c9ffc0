package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// PutUpdate renames a profile or changes its description
// PUT /api/v1/profiles/:id
// Body: {"name": "...", "description": "..."}
func PutUpdate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !types.BindJSONOrError(c, &request) {
			return
		}

		profile, err := deps.ProfileService.Update(c.Request.Context(), c.Param("id"), request.Name, request.Description)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.SingleProfileResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "profile updated"},
			Profile:      profile,
		})
	}
}
