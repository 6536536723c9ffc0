package speech

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// PostSynthesize splices a profile's word recordings into one WAV
// matching the submitted text. Words with no recording are skipped and
// listed in the X-Missing-Words header.
// POST /api/v1/speech
// Body: {"profile_id": "...", "text": "..."}
func PostSynthesize(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			ProfileID string `json:"profile_id" binding:"required"`
			Text      string `json:"text" binding:"required"`
		}
		if !types.BindJSONOrError(c, &request) {
			return
		}

		result, err := deps.SpeechService.Synthesize(c.Request.Context(), request.ProfileID, request.Text)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		if len(result.Missing) > 0 {
			c.Header("X-Missing-Words", strings.Join(result.Missing, ","))
		}
		c.Data(http.StatusOK, "audio/wav", result.Audio)
	}
}
