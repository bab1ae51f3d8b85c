// Package dx is a client for the MKDX sensor data API. A Client is bound to
// a single feed and posts data points to, or reads values from, the streams
// of that feed.
package dx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"mkdx/models"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultIngestURL = "https://ing.mkdx.btcsp.co.uk/datahub-adapter/sensors/feeds"
	DefaultAPIURL    = "https://api.mkdx.btcsp.co.uk/data-service/sensors/feeds"

	// AggregateLimit is the number of data points returned by an aggregate query
	AggregateLimit = 100

	DefaultVersion = 1
	DefaultTimeout = 30 * time.Second
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client holds the configuration for one API key and feed. It keeps no
// per-call state and can be shared between goroutines.
type Client struct {
	apiKey  string
	feedId  string
	version int
	delta   time.Duration
	header  http.Header

	ingestURL  string
	apiURL     string
	httpClient Doer
	output     io.Writer
	now        func() time.Time
}

type Option func(*Client)

// WithVersion sets the API version. Zero keeps the default of 1.
func WithVersion(version int) Option {
	return func(c *Client) {
		if version != 0 {
			c.version = version
		}
	}
}

// WithDelta shifts event times by the given number of minutes
func WithDelta(minutes float64) Option {
	return func(c *Client) {
		c.delta = time.Duration(minutes * float64(time.Minute))
	}
}

func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

func WithIngestURL(u string) Option {
	return func(c *Client) {
		c.ingestURL = strings.TrimSuffix(u, "/")
	}
}

func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimSuffix(u, "/")
	}
}

// WithOutput sets where displayed data is written, stdout by default
func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.output = w
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the given feed. An empty API key is accepted
// here, but every call made with it fails with ErrMissingAPIKey.
func New(apiKey string, feedId string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		feedId:     feedId,
		version:    DefaultVersion,
		ingestURL:  DefaultIngestURL,
		apiURL:     DefaultAPIURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		output:     os.Stdout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.header = http.Header{}
	c.header.Set("accept", "application/json")
	c.header.Set("x-api-key", c.apiKey)
	c.header.Set("Content-Type", "application/json")

	return c
}

func (c *Client) FeedId() string {
	return c.feedId
}

func (c *Client) Version() int {
	return c.version
}

func (c *Client) Delta() time.Duration {
	return c.delta
}

// Header returns a copy of the headers sent with every request
func (c *Client) Header() http.Header {
	return c.header.Clone()
}

// IngestURL is the endpoint data points are posted to
func (c *Client) IngestURL() string {
	return fmt.Sprintf("%s/%s/%d", c.ingestURL, url.PathEscape(c.feedId), c.version)
}

// QueryURL is the endpoint read by a query of the given kind
func (c *Client) QueryURL(q models.Query) (string, error) {
	base := fmt.Sprintf("%s/%s/%d/datastream/%s", c.apiURL, url.PathEscape(c.feedId), c.version, url.PathEscape(q.StreamId))
	switch q.Kind {
	case models.Latest:
		return base, nil
	case models.Aggregate:
		return fmt.Sprintf("%s/datapoints?limit=%d", base, AggregateLimit), nil
	default:
		return "", fmt.Errorf("dx: unknown query kind %d", q.Kind)
	}
}

// Post sends a single data point to a stream and returns the decoded response
func (c *Client) Post(ctx context.Context, streamId string, value string) (any, error) {
	if err := c.checkAPIKey(opPost); err != nil {
		return nil, err
	}

	body := models.IngestRequest{
		Data: []models.DataPoint{
			{
				StreamId:  streamId,
				Value:     value,
				EventTime: c.CurrentTimestamp(),
			},
		},
	}

	log.WithFields(log.Fields{
		"stream":    streamId,
		"eventTime": body.Data[0].EventTime,
	}).Debug("Posting data point")

	return c.do(ctx, opPost, http.MethodPost, c.IngestURL(), body)
}

// Get reads a stream. With q.Display set the result is also pretty-printed
// to the client's output.
func (c *Client) Get(ctx context.Context, q models.Query) (any, error) {
	if err := c.checkAPIKey(opGet); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"stream": q.StreamId,
		"kind":   q.Kind.String(),
	}).Debug("Reading stream")

	endpoint, err := c.QueryURL(q)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, opGet, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	if q.Display {
		if err := c.DisplayData(data); err != nil {
			log.Warnf("Failed to display data: %v", err)
		}
	}

	return data, nil
}

func (c *Client) checkAPIKey(op string) error {
	if c.apiKey != "" {
		return nil
	}
	log.Warn("Please enter your API key.")
	requestsTotal.WithLabelValues(op, outcomeMissingAPIKey).Inc()
	return ErrMissingAPIKey
}

// do issues exactly one request and decodes the JSON response
func (c *Client) do(ctx context.Context, op string, method string, endpoint string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("dx: encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, c.fail(op, &RequestError{Op: op, Method: method, URL: endpoint, Err: err})
	}
	req.Header = c.header.Clone()

	start := time.Now()
	res, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(op, &RequestError{Op: op, Method: method, URL: endpoint, Err: err})
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, c.fail(op, &RequestError{
			Op:         op,
			Method:     method,
			URL:        endpoint,
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		})
	}

	data, err := decodeBody(res.Body)
	if err != nil {
		return nil, c.fail(op, &DecodeError{Op: op, URL: endpoint, Err: err})
	}

	requestsTotal.WithLabelValues(op, outcomeOK).Inc()
	return data, nil
}

// fail logs and counts a failed call, returning err unchanged
func (c *Client) fail(op string, err error) error {
	outcome := outcomeRequestError
	if _, ok := err.(*DecodeError); ok {
		outcome = outcomeDecodeError
	}
	requestsTotal.WithLabelValues(op, outcome).Inc()

	log.WithFields(log.Fields{
		"op":   op,
		"feed": c.feedId,
	}).Errorf("An error occurred: %v", err)
	return err
}

// decodeBody returns nil for an empty body. Numbers are kept as json.Number
// so values are passed on exactly as the API sent them.
func decodeBody(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
