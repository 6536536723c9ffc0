package vocabulary

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// PostSync reconciles the profile's audio files against its vocabulary
// records. Idempotent; safe to repeat.
// POST /api/v1/profiles/:id/sync-vocabulary
func PostSync(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := deps.VocabularyService.Sync(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendAppError(c, err)
			return
		}
		if len(report.AddedRecords) > 0 {
			deps.SpeechService.InvalidateProfile(c.Param("id"))
		}
		types.SendSuccess(c, report)
	}
}
