package breach

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAccount is returned when a lookup is attempted without an account.
	ErrEmptyAccount = errors.New("account identifier is empty")

	// ErrSummaryGeneration wraps any failure of the summary generator.
	ErrSummaryGeneration = errors.New("summary generation failed")

	// ErrUpstreamUnavailable marks a lookup that got no usable response:
	// transport failure, unreadable body or malformed JSON.
	ErrUpstreamUnavailable = errors.New("breach lookup service unavailable")
)

// ConfigurationError reports a missing or invalid setting. It is raised
// before any network or file I/O.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

// UpstreamError carries a non-200/404 response from the lookup API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}
