package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func postCmd() *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Post a value to a stream",
		ArgsUsage: "<stream> <value>",
		Description: `Posts a single data point to a stream of the feed.

The event time is the current UTC time plus the configured delta. The stream
can be a stream ID or a name from the [streams] table of the config file.

Prints the API response as a single JSON line.`,
		Flags: clientFlags(),
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 2 {
				return fmt.Errorf("expected <stream> <value>, got %d arguments", ctx.NArg())
			}

			cfg, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			streamId := cfg.ResolveStream(ctx.Args().Get(0))
			res, err := client.Post(ctx.Context, streamId, ctx.Args().Get(1))
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"stream": streamId,
				"feed":   client.FeedId(),
			}).Info("Posted data point")

			return printJSON(ctx.App.Writer, res)
		},
	}
}
