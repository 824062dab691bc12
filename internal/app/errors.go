package service

import "errors"

// Service error sentinels.
var (
	// ErrNotStarted is returned when an operation requires a started service.
	ErrNotStarted = errors.New("service not started")
	// ErrNoFetcher is returned by Sync when no upstream fetcher is configured.
	ErrNoFetcher = errors.New("no upstream fetcher configured")
)
