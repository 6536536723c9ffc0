package vocabulary

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// GetList returns one page of a profile's vocabulary. The total record
// count travels out-of-band in the X-Total-Count header so clients can
// page without a wrapper object.
// GET /api/v1/profiles/:id/vocabulary?skip=0&limit=50
func GetList(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip := types.ParseIntQuery(c, "skip", 0)
		limit := types.ParseIntQuery(c, "limit", 50)

		records, total, err := deps.VocabularyService.List(c.Request.Context(), c.Param("id"), skip, limit)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		types.SendSuccess(c, records)
	}
}
