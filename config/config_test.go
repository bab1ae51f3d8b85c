package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mkdx/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
api_key = "secret"
feed_id = "feed-1"
version = 2
delta_minutes = -60.5
timeout = "5s"

[streams]
aqi = "100"
temperature = "101"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mkdx.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := config.LoadConfig(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "feed-1", cfg.FeedId)
	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, -60.5, cfg.DeltaMinutes)
	assert.Equal(t, map[string]string{"aqi": "100", "temperature": "101"}, cfg.Streams)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.LoadConfig(writeFile(t, "api_key = "))
	assert.ErrorContains(t, err, "error parsing config file")
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := &config.TomlConfig{
		APIKey:  "secret",
		FeedId:  "feed-1",
		Version: 1,
		Streams: map[string]string{"aqi": "100"},
	}
	require.NoError(t, config.SaveConfig(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolveStream(t *testing.T) {
	cfg, err := config.LoadConfig(writeFile(t, sample))
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "alias", input: "aqi", expected: "100"},
		{name: "raw id", input: "555", expected: "555"},
		{name: "unknown name", input: "humidity", expected: "humidity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.ResolveStream(tt.input))
		})
	}

	assert.Equal(t, "9", (&config.TomlConfig{}).ResolveStream("9"))
}

func TestStreamNames(t *testing.T) {
	cfg := &config.TomlConfig{Streams: map[string]string{"b": "2", "c": "3", "a": "1"}}
	assert.Equal(t, []string{"a", "b", "c"}, cfg.StreamNames())
	assert.Empty(t, (&config.TomlConfig{}).StreamNames())
}

func TestRequestTimeout(t *testing.T) {
	d, err := (&config.TomlConfig{}).RequestTimeout(30 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	d, err = (&config.TomlConfig{Timeout: "5s"}).RequestTimeout(30 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	_, err = (&config.TomlConfig{Timeout: "soon"}).RequestTimeout(30 * time.Second)
	assert.Error(t, err)
}
