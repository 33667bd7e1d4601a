package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/spigell/job-scraper/cmd.version=...".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
