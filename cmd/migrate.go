package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vietvoice/voicebank/internal/database"
	"github.com/vietvoice/voicebank/internal/models"
	"github.com/vietvoice/voicebank/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply the voicebank database schema.

Runs GORM auto-migration for the voice profile and vocabulary record
tables against the configured database. Safe to repeat; existing data
is preserved.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.VoiceProfile{}, &models.VocabularyRecord{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Printf("Database schema up to date at %s\n", cfg.Database.Path)
	return nil
}
