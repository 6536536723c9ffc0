package vocabulary

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vietvoice/voicebank/api/types"
)

// PostAdd uploads audio for one word as multipart form data. When the
// word already exists and overwrite is false, the response is 200 with
// {"exists": true} and nothing changes; the client must re-submit with
// overwrite=true after the user confirms.
// POST /api/v1/profiles/:id/vocabulary
// Form fields: word, overwrite, audio_file
func PostAdd(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		word := c.PostForm("word")
		if word == "" {
			types.SendBadRequest(c, "word form field is required")
			return
		}

		overwrite, _ := strconv.ParseBool(c.DefaultPostForm("overwrite", "false"))

		fileHeader, err := c.FormFile("audio_file")
		if err != nil {
			types.SendBadRequest(c, "audio_file form field is required")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			types.SendBadRequest(c, "could not open uploaded audio")
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			types.SendBadRequest(c, "could not read uploaded audio")
			return
		}

		record, exists, err := deps.VocabularyService.Add(c.Request.Context(), c.Param("id"), word, audio, overwrite)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		if exists {
			types.SendSuccess(c, gin.H{
				"exists": true,
				"word":   record.Word,
			})
			return
		}

		deps.SpeechService.InvalidateProfile(c.Param("id"))
		types.SendCreated(c, gin.H{
			"id":         record.ID,
			"word":       record.Word,
			"size_bytes": record.SizeBytes,
			"created_at": record.CreatedAt,
		})
	}
}
