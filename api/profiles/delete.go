package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// Delete removes a profile
// DELETE /api/v1/profiles/:id
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.ProfileService.Delete(c.Request.Context(), c.Param("id")); err != nil {
			types.SendAppError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
