package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/matsen/slackstream/internal/config"
	"github.com/spf13/cobra"
)

var channelsRegistry string

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List configured channels",
	Long: `List all channels configured in the channel registry.

Shows channel name, ID, and purpose for each configured channel.

Examples:
  slackstream channels
  slackstream channels --human`,
	Args: cobra.NoArgs,
	RunE: runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	channelsCmd.Flags().StringVar(&channelsRegistry, "registry", "", "Channel registry file (default $SLACKSTREAM_CHANNELS or ./channels.yml)")
}

// ChannelInfo contains information about a configured channel.
type ChannelInfo struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Purpose string `json:"purpose,omitempty"`
}

// ChannelsResponse is the JSON output for slackstream channels.
type ChannelsResponse struct {
	Channels []ChannelInfo `json:"channels"`
}

func runChannels(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry(config.RegistryPath(channelsRegistry))
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	infos := make([]ChannelInfo, 0, len(reg.Channels))
	for name, entry := range reg.Channels {
		infos = append(infos, ChannelInfo{Name: name, ID: entry.ID, Purpose: entry.Purpose})
	}

	// Sort by name for consistent output
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	response := ChannelsResponse{Channels: infos}
	if humanOutput {
		return outputChannelsHuman(response)
	}
	return outputJSON(response)
}

func outputChannelsHuman(response ChannelsResponse) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tPURPOSE")
	for _, ch := range response.Channels {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ch.Name, ch.ID, ch.Purpose)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d channels\n", len(response.Channels))
	return nil
}
