package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "channels.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing registry: %v", err)
	}
	return path
}

func TestLoadRegistry_Valid(t *testing.T) {
	path := writeRegistry(t, `
channels:
  team-updates:
    id: C0123456789
    purpose: weekly updates
  incidents:
    id: C0000000001
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reg.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(reg.Channels))
	}
	if reg.Channels["team-updates"].ID != "C0123456789" {
		t.Errorf("id = %q", reg.Channels["team-updates"].ID)
	}
	if reg.Channels["team-updates"].Purpose != "weekly updates" {
		t.Errorf("purpose = %q", reg.Channels["team-updates"].Purpose)
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRegistry_InvalidYAML(t *testing.T) {
	path := writeRegistry(t, "channels: [not: a: map")
	if _, err := LoadRegistry(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadRegistry_Empty(t *testing.T) {
	path := writeRegistry(t, "channels: {}\n")
	if _, err := LoadRegistry(path); err == nil {
		t.Error("expected error for empty registry")
	}
}

func TestLoadRegistry_MissingID(t *testing.T) {
	path := writeRegistry(t, `
channels:
  team-updates:
    purpose: no id here
`)
	_, err := LoadRegistry(path)
	if err == nil || !strings.Contains(err.Error(), "missing an id") {
		t.Errorf("error = %v, want missing id", err)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := &Registry{Channels: map[string]ChannelEntry{
		"team-updates": {ID: "C0123456789"},
		"incidents":    {ID: "C0000000001"},
	}}

	entry, err := reg.Lookup("team-updates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != "C0123456789" {
		t.Errorf("id = %q", entry.ID)
	}

	_, err = reg.Lookup("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown channel")
	}
	// The error names the configured channels to help the caller.
	if !strings.Contains(err.Error(), "incidents") || !strings.Contains(err.Error(), "team-updates") {
		t.Errorf("error %q does not list configured channels", err)
	}
}
