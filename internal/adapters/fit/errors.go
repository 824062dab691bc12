package fit

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrNoBaseURL      = errors.New("fit base URL not configured")
	ErrUpstreamStatus = errors.New("upstream returned error status")
)
