package vocabulary

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// Delete removes one word and its audio asset
// DELETE /api/v1/profiles/:id/vocabulary
// Body: {"word": "..."}
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Word string `json:"word" binding:"required"`
		}
		if !types.BindJSONOrError(c, &request) {
			return
		}

		if err := deps.VocabularyService.Delete(c.Request.Context(), c.Param("id"), request.Word); err != nil {
			types.SendAppError(c, err)
			return
		}
		deps.SpeechService.InvalidateProfile(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}
