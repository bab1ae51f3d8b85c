package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func streamsCmd() *cli.Command {
	return &cli.Command{
		Name:  "streams",
		Usage: "List the stream names in the configuration file",
		Flags: clientFlags(),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			for _, name := range cfg.StreamNames() {
				fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", name, cfg.Streams[name])
			}
			return nil
		},
	}
}
