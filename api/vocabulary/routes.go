package vocabulary

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// RegisterRoutes registers vocabulary routes under the profile group
// Rate limiting is applied at the route registration level
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, vocabularyMiddleware, syncMiddleware gin.HandlerFunc) {
	// GET /api/v1/profiles/:id/vocabulary - List words with X-Total-Count
	router.GET("/:id/vocabulary", vocabularyMiddleware, GetList(deps))

	// POST /api/v1/profiles/:id/vocabulary - Upload one word's audio
	router.POST("/:id/vocabulary", vocabularyMiddleware, PostAdd(deps))

	// DELETE /api/v1/profiles/:id/vocabulary - Delete one word
	router.DELETE("/:id/vocabulary", vocabularyMiddleware, Delete(deps))

	// GET /api/v1/profiles/:id/vocabulary/:word/audio - Raw audio bytes
	router.GET("/:id/vocabulary/:word/audio", vocabularyMiddleware, GetAudio(deps))

	// POST /api/v1/profiles/:id/sync-vocabulary - Reconcile files vs records
	router.POST("/:id/sync-vocabulary", syncMiddleware, PostSync(deps))
}
