package remote

import (
	"fmt"
	"net/http"
)

// StatusError is returned when the document store answers with a non-2xx
// status code.
type StatusError struct {
	Op         string // "fetch", "create" or "update"
	StatusCode int
	Body       string // Response body, truncated
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s progress: HTTP %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Temporary reports whether retrying the request later may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
