package speech

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// RegisterRoutes registers speech assembly routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/speech - Assemble spoken audio from recorded words
	router.POST("", PostSynthesize(deps))
}
