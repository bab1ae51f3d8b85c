package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"mkdx/config"
	"mkdx/dx"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// clientFlags are shared by every command that talks to the API
func clientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   config.DefaultPath,
			Usage:   "Path to configuration file",
			EnvVars: []string{"MKDX_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "MKDX API key",
			EnvVars: []string{"MKDX_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "feed-id",
			Aliases: []string{"f"},
			Usage:   "Feed ID",
			EnvVars: []string{"MKDX_FEED_ID"},
		},
		&cli.IntFlag{
			Name:    "api-version",
			Usage:   "API version of the feed",
			EnvVars: []string{"MKDX_VERSION"},
		},
		&cli.Float64Flag{
			Name:    "delta",
			Usage:   "Minutes added to the event time of posted data points",
			EnvVars: []string{"MKDX_DELTA"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout",
			EnvVars: []string{"MKDX_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "ingest-url",
			Usage:   "Base URL of the ingestion API",
			Value:   dx.DefaultIngestURL,
			EnvVars: []string{"MKDX_INGEST_URL"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Base URL of the data API",
			Value:   dx.DefaultAPIURL,
			EnvVars: []string{"MKDX_API_URL"},
		},
	}
}

// loadSettings reads the config file and applies flag overrides. A missing
// file is only an error when its path was given explicitly.
func loadSettings(ctx *cli.Context) (*config.TomlConfig, error) {
	path := ctx.String("config")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || ctx.IsSet("config") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debugf("No config file at %s, using flags only", path)
		cfg = &config.TomlConfig{}
	}

	if ctx.IsSet("api-key") {
		cfg.APIKey = ctx.String("api-key")
	}
	if ctx.IsSet("feed-id") {
		cfg.FeedId = ctx.String("feed-id")
	}
	if ctx.IsSet("api-version") {
		cfg.Version = ctx.Int("api-version")
	}
	if ctx.IsSet("delta") {
		cfg.DeltaMinutes = ctx.Float64("delta")
	}
	if ctx.IsSet("timeout") {
		cfg.Timeout = ctx.Duration("timeout").String()
	}

	return cfg, nil
}

func newClient(ctx *cli.Context, cfg *config.TomlConfig) (*dx.Client, error) {
	if cfg.FeedId == "" {
		return nil, errors.New("please specify a feed ID")
	}

	timeout, err := cfg.RequestTimeout(dx.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	return dx.New(cfg.APIKey, cfg.FeedId,
		dx.WithVersion(cfg.Version),
		dx.WithDelta(cfg.DeltaMinutes),
		dx.WithHTTPClient(&http.Client{Timeout: timeout}),
		dx.WithIngestURL(ctx.String("ingest-url")),
		dx.WithAPIURL(ctx.String("api-url")),
		dx.WithOutput(ctx.App.Writer),
	), nil
}

// printJSON writes data as a single JSON line
func printJSON(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
