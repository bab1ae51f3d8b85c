package dx

import "time"

const timeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime formats t in UTC with millisecond precision and a Z suffix,
// the event time format expected by the ingestion API
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// CurrentTimestamp is the current UTC time shifted by the client's delta
func (c *Client) CurrentTimestamp() string {
	return FormatTime(c.now().Add(c.delta))
}
