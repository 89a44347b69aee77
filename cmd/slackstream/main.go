// Package main provides the slackstream CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slackstream",
	Short: "Stream complete Slack channel histories as JSON",
	Long: `slackstream exports the complete message history of a Slack channel
to stdout as a single JSON array.

The export is streamed: output begins with the first page and memory use
stays bounded no matter how long the history is. Messages are passed
through exactly as the Slack API returns them, so the output survives
schema changes on the Slack side.

Requires SLACK_API_TOKEN with the channels:history scope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
