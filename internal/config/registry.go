package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// RegistryFile is the default channel registry filename.
	RegistryFile = "channels.yml"

	// RegistryEnv overrides the registry path when set.
	RegistryEnv = "SLACKSTREAM_CHANNELS"
)

// ChannelEntry describes one configured channel.
type ChannelEntry struct {
	ID      string `yaml:"id" json:"id"`
	Purpose string `yaml:"purpose,omitempty" json:"purpose,omitempty"`
}

// Registry maps channel names to their configuration.
type Registry struct {
	Channels map[string]ChannelEntry `yaml:"channels"`
}

// RegistryPath resolves the registry location: an explicit path wins, then
// $SLACKSTREAM_CHANNELS, then ./channels.yml.
func RegistryPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(RegistryEnv); p != "" {
		return p
	}
	return RegistryFile
}

// LoadRegistry reads and validates a channel registry file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(reg.Channels) == 0 {
		return nil, fmt.Errorf("%s must define at least one channel", path)
	}
	for name, entry := range reg.Channels {
		if entry.ID == "" {
			return nil, fmt.Errorf("channel %q is missing an id", name)
		}
	}

	return &reg, nil
}

// Lookup returns the entry for a channel name.
func (r *Registry) Lookup(name string) (*ChannelEntry, error) {
	entry, ok := r.Channels[name]
	if !ok {
		names := make([]string, 0, len(r.Channels))
		for n := range r.Channels {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("channel %q not found in registry; configured channels: %s",
			name, strings.Join(names, ", "))
	}
	return &entry, nil
}
