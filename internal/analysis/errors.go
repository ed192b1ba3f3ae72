package analysis

import (
	"fmt"
)

// NetworkError means the request could not be sent or the response could not
// be read or decoded.
type NetworkError struct {
	Op  string // "send", "read", "decode"
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a well-formed non-2xx response.
type ServerError struct {
	URL        string
	StatusCode int
	Body       string // excerpt
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.URL, e.StatusCode, e.Body)
}
