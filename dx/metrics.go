package dx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opPost = "post"
	opGet  = "get"

	outcomeOK            = "ok"
	outcomeMissingAPIKey = "missing_api_key"
	outcomeRequestError  = "request_error"
	outcomeDecodeError   = "decode_error"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mkdx_requests_total",
		Help: "The total number of feed client calls by operation and outcome",
	}, []string{"operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mkdx_request_duration_seconds",
		Help:    "Duration of requests sent to the MKDX API",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // Start at 10ms, double each bucket, 10 buckets
	}, []string{"operation"})
)
