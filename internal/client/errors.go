package client

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every failure produced by the client:
// non-success HTTP statuses, network errors and undecodable bodies alike.
var ErrRequestFailed = errors.New("request failed")

// RequestFailedError describes a failed call to the catalog API
type RequestFailedError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Detail is the server's error message, when it sent one
	Detail string
	Err    error
}

func (e *RequestFailedError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s %s: %s (%s)", e.Method, e.URL, e.Status, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.URL)
	}
}

// Unwrap returns the underlying transport or decode error, if any
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrRequestFailed
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}
