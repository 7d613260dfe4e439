package discogs

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials indicates the username, token or user agent is not configured
var ErrMissingCredentials = errors.New("discogs username, token and user agent must be configured")

// UpstreamError is a non-success response from the Discogs API. The body is
// kept because Discogs puts the useful diagnostics there.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("discogs API returned HTTP %d: %s", e.StatusCode, e.Body)
}
