package api

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when an endpoint needing an identifier gets none
var ErrEmptyID = errors.New("empty identifier")

// StatusError reports a non-2xx response
type StatusError struct {
	Op         string
	StatusCode int
	Body       string // leading bytes of the response body, for logs
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
