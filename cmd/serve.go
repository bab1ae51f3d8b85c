package cmd

import (
	"fmt"
	"time"

	"mkdx/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the feed over a local HTTP gateway",
		Description: `Starts an HTTP server that forwards requests to the configured feed:

GET  /streams/:stream             latest value
GET  /streams/:stream/datapoints  last 100 data points
POST /streams/:stream             post {"value": "..."}
GET  /metrics                     Prometheus metrics
GET  /healthz                     health check`,
		Flags: append(clientFlags(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "Port to listen on",
				EnvVars: []string{"MKDX_PORT"},
			},
		),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			app := server.Server(&server.ServerConfig{
				Client:        client,
				ResolveStream: cfg.ResolveStream,
			})

			errChan := make(chan error, 1)
			go func() {
				addr := fmt.Sprintf(":%d", ctx.Int("port"))
				log.Infof("Starting server on %s", addr)
				errChan <- app.Listen(addr)
			}()

			select {
			case err := <-errChan:
				return err
			case <-ctx.Context.Done():
				log.Info("Gracefully shutting down...")
				return app.ShutdownWithTimeout(60 * time.Second)
			}
		},
	}
}
