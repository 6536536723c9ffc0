package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// GetProfile returns one profile by ID
// GET /api/v1/profiles/:id
func GetProfile(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := deps.ProfileService.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.SingleProfileResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Profile:      profile,
		})
	}
}
