package endpoint

import (
	"errors"
	"fmt"

	"github.com/sgaunet/gitci/internal/security"
)

// StatusError reports an unexpected HTTP status on an operation that is
// documented to fail loudly. It carries enough context to be actionable
// without re-deriving the request: the operation name, the resource, and
// the sanitized response body.
type StatusError struct {
	// Op is the high-level operation, e.g. "fork" or "create webhook".
	Op string

	// Resource identifies the remote target, e.g. "owner/repo".
	Resource string

	// StatusCode is the HTTP status received.
	StatusCode int

	// Body is the raw response body.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d (%s)",
		e.Op, e.Resource, e.StatusCode, security.SanitizeString(string(e.Body)))
}

// NewStatusError builds a StatusError from a raw response.
func NewStatusError(op, resource string, response *Response) *StatusError {
	return &StatusError{
		Op:         op,
		Resource:   resource,
		StatusCode: response.StatusCode,
		Body:       response.Body,
	}
}

// StatusOf extracts the HTTP status code from err when it wraps a
// StatusError. Returns 0 when it does not.
func StatusOf(err error) int {
	var statusError *StatusError
	if errors.As(err, &statusError) {
		return statusError.StatusCode
	}
	return 0
}
