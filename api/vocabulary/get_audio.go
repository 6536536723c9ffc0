package vocabulary

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// GetAudio streams the stored WAV bytes for one word
// GET /api/v1/profiles/:id/vocabulary/:word/audio
func GetAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := deps.VocabularyService.Audio(c.Request.Context(), c.Param("id"), c.Param("word"))
		if err != nil {
			types.SendAppError(c, err)
			return
		}
		c.Data(http.StatusOK, "audio/wav", data)
	}
}
