package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/vietvoice/voicebank/api/health"
	"github.com/vietvoice/voicebank/api/profiles"
	"github.com/vietvoice/voicebank/api/speech"
	"github.com/vietvoice/voicebank/api/types"
	"github.com/vietvoice/voicebank/api/version"
	"github.com/vietvoice/voicebank/api/vocabulary"
	"github.com/vietvoice/voicebank/internal/services/cache"
	profilesService "github.com/vietvoice/voicebank/internal/services/profiles"
	speechService "github.com/vietvoice/voicebank/internal/services/speech"
	vocabularyService "github.com/vietvoice/voicebank/internal/services/vocabulary"
	"github.com/vietvoice/voicebank/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Initialize services if database is available
	if deps.DB != nil && deps.DB.DB != nil {
		if deps.ProfileService == nil {
			deps.ProfileService = profilesService.NewService(
				profilesService.NewRepository(deps.DB.DB),
			)
		}

		if deps.VocabularyService == nil {
			store, err := vocabularyService.NewFilesystemStore(cfg.Storage.AudioDir)
			if err != nil {
				return fmt.Errorf("failed to initialize audio storage: %w", err)
			}
			deps.VocabularyService = vocabularyService.NewService(
				vocabularyService.NewRepository(deps.DB.DB),
				store,
			)
		}

		if deps.SpeechService == nil {
			utterances := cache.NewUtteranceCache(cfg.Speech.CacheMaxBytes, cfg.Speech.CacheTTL)
			deps.SpeechService = speechService.NewService(deps.VocabularyService, utterances)
		}

		// Register profile routes with general rate limiting (10 req/s, burst of 20)
		profileGroup := v1.Group("/profiles")
		profileGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
		profiles.RegisterRoutes(profileGroup, deps)

		// Vocabulary routes live under a profile. Uploads carry audio
		// payloads (20 req/s, burst of 30 so a batch session is not
		// throttled); sync walks the audio directory, so it gets a much
		// tighter limit (1 req/s, burst of 2).
		vocabularyMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30)
		syncMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
		vocabulary.RegisterRoutes(profileGroup, deps, vocabularyMiddleware, syncMiddleware)

		// Speech assembly reads many audio files per request (5 req/s, burst of 10)
		speechGroup := v1.Group("/speech")
		speechGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
		speech.RegisterRoutes(speechGroup, deps)
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
