package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vietvoice/voicebank/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicebank",
	Short: "Personal voice library recorder and API server",
	Long: `Voicebank - record a personal per-word voice library and play it back

The voicebank server stores per-word audio recordings grouped into voice
profiles and assembles them into spoken output. The record command runs
a guided batch recording session against a running server.

Features:
  • Voice profile and vocabulary management over HTTP
  • Guided batch recording sessions with countdown and auto-stop
  • Overwrite confirmation before replacing an existing recording
  • Storage/database reconciliation (sync-vocabulary)
  • Concatenative playback of recorded words`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Version and help output should not depend on a config file.
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
