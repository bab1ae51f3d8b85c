package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

const DefaultPath = "mkdx.toml"

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	APIKey       string  `toml:"api_key"`
	FeedId       string  `toml:"feed_id"`
	Version      int     `toml:"version,omitempty"`
	DeltaMinutes float64 `toml:"delta_minutes,omitempty"`
	// Timeout is a Go duration string, e.g. "30s"
	Timeout string `toml:"timeout,omitempty"`
	// Streams maps friendly names to stream IDs
	Streams map[string]string `toml:"streams,omitempty"`
}

func LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config TomlConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the config to path. The file holds the API key so it is
// only readable by the owner.
func SaveConfig(path string, config *TomlConfig) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// ResolveStream returns the stream ID for a configured name, or the input
// itself when it is not a known name
func (c *TomlConfig) ResolveStream(nameOrId string) string {
	if id, ok := c.Streams[nameOrId]; ok {
		return id
	}
	return nameOrId
}

// StreamNames returns the configured stream names in sorted order
func (c *TomlConfig) StreamNames() []string {
	names := lo.Keys(c.Streams)
	slices.Sort(names)
	return names
}

// RequestTimeout parses Timeout, returning fallback when it is unset
func (c *TomlConfig) RequestTimeout(fallback time.Duration) (time.Duration, error) {
	if c.Timeout == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
