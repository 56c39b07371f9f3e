package travis

import "errors"

// Error definitions for Travis CI API operations.
var (
	errNotAuthenticated = errors.New("travis client is not authenticated, call Login first")
	errLoginFailed      = errors.New("travis login response carried no access token")
	errSyncTimeout      = errors.New("travis account sync did not complete within the poll budget")
	errNotPEM           = errors.New("repository key is not PEM encoded")
	errNotRSA           = errors.New("repository key is not an RSA key")

	// ErrNotAuthenticated is returned by gated operations before a login.
	ErrNotAuthenticated = errNotAuthenticated
	// ErrLoginFailed is returned when the token exchange yields no token.
	ErrLoginFailed = errLoginFailed
	// ErrSyncTimeout is returned when a blocking sync exhausts its polls.
	ErrSyncTimeout = errSyncTimeout
	// ErrNotPEM is returned when a repository key fails to PEM decode.
	ErrNotPEM = errNotPEM
	// ErrNotRSA is returned when a repository key decodes to a non-RSA key.
	ErrNotRSA = errNotRSA
)
