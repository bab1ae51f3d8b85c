package cmd

import (
	"fmt"

	"mkdx/models"

	"github.com/urfave/cli/v2"
)

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read the latest value or the last 100 values of a stream",
		ArgsUsage: "<stream>",
		Flags: append(clientFlags(),
			&cli.BoolFlag{
				Name:    "aggregate",
				Aliases: []string{"a"},
				Usage:   "Read the last 100 data points instead of the latest value",
			},
			&cli.BoolFlag{
				Name:    "display",
				Aliases: []string{"d"},
				Usage:   "Pretty-print the result",
			},
		),
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return fmt.Errorf("expected <stream>, got %d arguments", ctx.NArg())
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
				Display:  ctx.Bool("display"),
			}
			if ctx.Bool("aggregate") {
				q.Kind = models.Aggregate
			}

			res, err := client.Get(ctx.Context, q)
			if err != nil {
				return err
			}
			if q.Display {
				return nil
			}
			return printJSON(ctx.App.Writer, res)
		},
	}
}
