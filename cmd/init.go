package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"mkdx/config"
	"mkdx/dx"

	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
	"github.com/urfave/cli/v2"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create or update the configuration file",
		Description: `Asks for the API key, feed ID and API version and writes them to the
configuration file. Stream names already in the file are kept.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "Path to configuration file",
				EnvVars: []string{"MKDX_CONFIG"},
			},
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.String("config")

			cfg, err := config.LoadConfig(path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				cfg = &config.TomlConfig{}
			}

			apiKey, err := prompt.New().Ask("API key:").Input("", input.WithEchoMode(input.EchoNone))
			if err != nil {
				return err
			}
			if apiKey != "" {
				cfg.APIKey = apiKey
			}

			feedId, err := prompt.New().Ask("Feed ID:").Input(cfg.FeedId)
			if err != nil {
				return err
			}
			cfg.FeedId = feedId

			version := cfg.Version
			if version == 0 {
				version = dx.DefaultVersion
			}
			answer, err := prompt.New().Ask("API version:").Input(strconv.Itoa(version))
			if err != nil {
				return err
			}
			cfg.Version, err = strconv.Atoi(answer)
			if err != nil {
				return fmt.Errorf("invalid API version %q: %w", answer, err)
			}

			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, "Wrote config to", path)
			return nil
		},
	}
}
