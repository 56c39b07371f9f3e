package github

import "errors"

// Error definitions for GitHub API operations.
var (
	errTokenRequired  = errors.New("GITHUB_TOKEN environment variable is required")
	errNotImplemented = errors.New("non-blocking fork is not implemented")
	errBadEncoding    = errors.New("file content encoding is not base64")

	// ErrTokenRequired is returned when GITHUB_TOKEN environment variable is missing.
	ErrTokenRequired = errTokenRequired
	// ErrNotImplemented is returned when a fork is requested without blocking.
	ErrNotImplemented = errNotImplemented
	// ErrBadEncoding is returned when a fetched file is not base64 encoded.
	// This indicates a local assumption violated by the remote API, not a
	// remote failure.
	ErrBadEncoding = errBadEncoding
)
