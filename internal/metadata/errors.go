package metadata

import (
	"errors"
	"fmt"
	"net/http"
)

// Request-level failures returned by the Assembler.
var (
	ErrMissingTarget     = errors.New("target URL is required")
	ErrInvalidTarget     = errors.New("invalid target URL, include http:// or https://")
	ErrTargetTimeout     = errors.New("target took too long to respond")
	ErrTargetUnreachable = errors.New("target could not be reached")
	ErrUpstream          = errors.New("failed to fetch external metadata")
	ErrConfigNotFound    = errors.New("layout configuration not found")
)

// Fetch classifications reported by Fetcher implementations.
var (
	ErrFetchTimeout     = errors.New("fetch timed out")
	ErrConnectionFailed = errors.New("connection failed")
)

// HTTPStatusError carries a non-2xx upstream response.
type HTTPStatusError struct {
	Status int
	Reason string
}

// NewHTTPStatusError builds an HTTPStatusError, deriving the reason phrase from the
// status code when none is supplied.
func NewHTTPStatusError(status int, reason string) *HTTPStatusError {
	if reason == "" {
		reason = http.StatusText(status)
	}
	return &HTTPStatusError{Status: status, Reason: reason}
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream responded %d %s", e.Status, e.Reason)
}
