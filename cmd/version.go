package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vietvoice/voicebank/api/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("voicebank %s (commit %s)\n", version.Version, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
