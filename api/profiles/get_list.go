package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// GetList returns the profiles belonging to a user
// GET /api/v1/profiles?user_id=...
func GetList(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			types.SendBadRequest(c, "user_id query parameter is required")
			return
		}

		list, err := deps.ProfileService.ListForUser(c.Request.Context(), userID)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.ProfilesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Profiles:     list,
			Count:        len(list),
		})
	}
}
