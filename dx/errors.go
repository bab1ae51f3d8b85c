package dx

import (
	"errors"
	"fmt"
	"net/http"
)

const maxErrorBody = 512

// ErrMissingAPIKey is returned, without any request being made, when the
// client was created with an empty API key
var ErrMissingAPIKey = errors.New("dx: please enter your API key")

// RequestError is a failed round trip: either the request could not be sent
// or the API answered with a 4xx/5xx status. StatusCode is zero in the
// first case.
type RequestError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dx: %s %s returned %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("dx: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError is a successful response whose body is not valid JSON
type DecodeError struct {
	Op  string
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dx: decode %s response from %s: %v", e.Op, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
