package models

// DataPoint is a single measurement sent to a stream
type DataPoint struct {
	StreamId  string `json:"streamId"`
	Value     string `json:"value"`
	EventTime string `json:"eventTime"`
}

// IngestRequest is the body of an ingestion call. The API takes a list
// but the client only ever sends one point per request.
type IngestRequest struct {
	Data []DataPoint `json:"data"`
}

// QueryKind selects which datastream endpoint a query reads from
type QueryKind int

const (
	// Latest reads the current value of a stream
	Latest QueryKind = iota
	// Aggregate reads up to the most recent 100 data points
	Aggregate
)

func (k QueryKind) String() string {
	switch k {
	case Latest:
		return "latest"
	case Aggregate:
		return "aggregate"
	}
	return "unknown"
}

// Query holds the per-call parameters of a read
type Query struct {
	StreamId string
	Kind     QueryKind
	// Display also pretty-prints the result to the client's output
	Display bool
}

// IngestValue is the body accepted by the gateway when posting a value
type IngestValue struct {
	Value string `json:"value"`
}
