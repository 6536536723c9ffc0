package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Build information, set at link time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Voicebank API",
			"version":     Version,
			"commit":      GitCommit,
			"description": "Personal voice library recording and playback API",
			"status":      "running",
		})
	}
}
