package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"mkdx/models"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Print the latest value of a stream whenever it changes",
		ArgsUsage: "<stream>",
		Description: `Polls the latest value of a stream and prints it as a JSON object on a
single line every time it changes. Use a tool like jq to process the output.

Failed polls are logged and the next poll happens at the normal interval.

Prints all other log messages to stderr.`,
		Flags: append(clientFlags(),
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Value:   30 * time.Second,
				Usage:   "Time between polls",
				EnvVars: []string{"MKDX_WATCH_INTERVAL"},
			},
		),
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return fmt.Errorf("expected <stream>, got %d arguments", ctx.NArg())
			}
			interval := ctx.Duration("interval")
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			cfg, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			q := models.Query{
				StreamId: cfg.ResolveStream(ctx.Args().First()),
				Kind:     models.Latest,
			}

			log.WithFields(log.Fields{
				"stream":   q.StreamId,
				"interval": interval,
			}).Info("Watching stream")

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			var last []byte
			for {
				res, err := client.Get(ctx.Context, q)
				if err == nil && res != nil {
					current, err := json.Marshal(res)
					if err != nil {
						log.Warnf("Failed to encode value: %v", err)
					} else if !bytes.Equal(current, last) {
						fmt.Fprintln(ctx.App.Writer, string(current))
						last = current
					}
				}

				select {
				case <-ctx.Context.Done():
					log.Info("Stopping watch")
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}
