package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/slackstream/internal/archive"
	"github.com/matsen/slackstream/internal/config"
	"github.com/matsen/slackstream/internal/export"
	"github.com/matsen/slackstream/internal/slack"
	"github.com/spf13/cobra"
)

var (
	exportArchive  string
	exportRegistry string
	exportVerbose  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [channel]",
	Short: "Stream a channel's full message history to stdout",
	Long: `Export the complete message history of a Slack channel as one JSON array.

The channel may be a raw conversation ID (C..., D..., G...), a name from
the channel registry, or omitted to use SLACK_CHANNEL. Pagination cursors
are followed until the history is exhausted; messages stream to stdout as
pages arrive.

Examples:
  slackstream export C0123456789
  slackstream export team-updates
  slackstream export --archive history.db C0123456789
  SLACK_CHANNEL=C0123456789 slackstream export`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	// Load .env file if present (for SLACK_API_TOKEN)
	_ = godotenv.Load()

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportArchive, "archive", "", "Also record messages into a SQLite file at this path")
	exportCmd.Flags().StringVar(&exportRegistry, "registry", "", "Channel registry file (default $SLACKSTREAM_CHANNELS or ./channels.yml)")
	exportCmd.Flags().BoolVar(&exportVerbose, "verbose", false, "Log page fetches to stderr")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	channel := cfg.Channel
	if len(args) == 1 {
		channel = args[0]
	}
	if channel == "" {
		exitWithError(ExitConfigError, "no channel given; pass one as an argument or set SLACK_CHANNEL")
	}

	// Registry names resolve to IDs; raw IDs pass through untouched.
	if !looksLikeChannelID(channel) {
		reg, err := config.LoadRegistry(config.RegistryPath(exportRegistry))
		if err != nil {
			exitWithError(ExitConfigError, "resolving channel %q: %v", channel, err)
		}
		entry, err := reg.Lookup(channel)
		if err != nil {
			exitWithError(ExitChannelNotFound, "%v", err)
		}
		channel = entry.ID
	}

	var opts []slack.ClientOption
	if exportVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, slack.WithLogger(logger))
	}
	client := slack.NewClient(cfg.APIToken, channel, opts...)

	var src export.Source = client.Messages(context.Background())

	var rec *archive.Recorder
	if exportArchive != "" {
		db, err := archive.Open(exportArchive)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer db.Close()

		rec, err = db.Record(src, channel)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		src = rec
	}

	if err := export.StreamArray(os.Stdout, src); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if rec != nil {
		if err := rec.Commit(); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		fmt.Fprintf(os.Stderr, "Archived %d messages to %s\n", rec.Count(), exportArchive)
	}

	return nil
}

// looksLikeChannelID reports whether s is a raw Slack conversation ID
// (C/D/G prefix followed by uppercase alphanumerics) rather than a
// registry name.
func looksLikeChannelID(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[0] {
	case 'C', 'D', 'G':
	default:
		return false
	}
	for _, r := range s[1:] {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
