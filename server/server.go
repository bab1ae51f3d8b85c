package server

import (
	"context"
	"errors"
	"time"

	"mkdx/dx"
	"mkdx/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// FeedClient is the part of dx.Client the gateway needs
type FeedClient interface {
	Post(ctx context.Context, streamId string, value string) (any, error)
	Get(ctx context.Context, q models.Query) (any, error)
}

type ServerConfig struct {
	// The client all requests are forwarded through
	Client FeedClient

	// Maps a stream name from the URL to a stream ID. Nil uses the name as is.
	ResolveStream func(string) string
}

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
}

// Returns a fiber.App that exposes the streams of one feed over HTTP
func Server(config *ServerConfig) *fiber.App {
	resolve := config.ResolveStream
	if resolve == nil {
		resolve = func(s string) string { return s }
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Errors are turned into responses after the middleware returns
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		log.WithFields(log.Fields{
			"method":    c.Method(),
			"route":     c.Route().Path,
			"status":    status,
			"requestId": c.GetRespHeader(fiber.HeaderXRequestID),
			"latency":   time.Since(start),
		}).Info("Request")
		return err
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/streams/:stream", func(c *fiber.Ctx) error {
		return query(c, config.Client, models.Query{
			StreamId: resolve(c.Params("stream")),
			Kind:     models.Latest,
		})
	})

	app.Get("/streams/:stream/datapoints", func(c *fiber.Ctx) error {
		return query(c, config.Client, models.Query{
			StreamId: resolve(c.Params("stream")),
			Kind:     models.Aggregate,
		})
	})

	app.Post("/streams/:stream", func(c *fiber.Ctx) error {
		var body models.IngestValue
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Invalid body"})
		}
		if body.Value == "" {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Missing value"})
		}

		streamId := resolve(c.Params("stream"))
		log.WithFields(log.Fields{
			"stream": streamId,
		}).Info("Forwarding data point")

		data, err := config.Client.Post(c.UserContext(), streamId, body.Value)
		if err != nil {
			return sendError(c, err)
		}
		return sendData(c, data)
	})

	return app
}

func query(c *fiber.Ctx, client FeedClient, q models.Query) error {
	data, err := client.Get(c.UserContext(), q)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, data)
}

func sendData(c *fiber.Ctx, data any) error {
	if data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusOK).JSON(data)
}

// sendError maps client errors to gateway responses
func sendError(c *fiber.Ctx, err error) error {
	var reqErr *dx.RequestError
	var decErr *dx.DecodeError

	switch {
	case errors.Is(err, dx.ErrMissingAPIKey):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: err.Error()})
	case errors.As(err, &reqErr):
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{
			Error:          err.Error(),
			UpstreamStatus: reqErr.StatusCode,
		})
	case errors.As(err, &decErr):
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: err.Error()})
	default:
		log.Errorf("Unexpected error from feed client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "Internal error"})
	}
}
