package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// RegisterRoutes registers voice profile routes
// Rate limiting is applied at the route registration level
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/profiles?user_id=... - List the user's profiles
	router.GET("", GetList(deps))

	// POST /api/v1/profiles - Create a profile
	router.POST("", PostAdd(deps))

	// GET /api/v1/profiles/:id - Get one profile
	router.GET("/:id", GetProfile(deps))

	// PUT /api/v1/profiles/:id - Rename a profile
	router.PUT("/:id", PutUpdate(deps))

	// DELETE /api/v1/profiles/:id - Delete a profile
	router.DELETE("/:id", Delete(deps))
}
