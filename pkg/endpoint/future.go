package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/gitci/internal/security"
)

// Future is a handle on a request already in flight. The response is read
// and JSON-decoded into T on the first Resolve call only; every later call
// returns the memoized outcome. Transport failures are logged and surfaced
// as (zero, false) rather than an error; callers must treat a missing
// result as a valid, silent outcome.
type Future[T any] struct {
	msg     string
	valid   []int
	log     *bullets.Logger
	results <-chan result

	once     sync.Once
	value    T
	ok       bool
	response *Response
}

type result struct {
	response *Response
	sent     http.Header
	err      error
}

// Fetch issues the request immediately in the background and returns a
// future for its decoded body. validCodes lists the status codes logged as
// expected at resolution time (default 200); an unexpected status is logged
// at warn level but the body is still decoded. Inspect Response for the
// status when it matters.
func Fetch[T any](ctx context.Context, c *Client, resource string, opts Options, validCodes ...int) *Future[T] {
	if len(validCodes) == 0 {
		validCodes = []int{http.StatusOK}
	}

	results := make(chan result, 1)
	go func() {
		response, sent, err := c.send(ctx, resource, opts)
		results <- result{response: response, sent: sent, err: err}
	}()

	return &Future[T]{
		msg:     fmt.Sprintf("%s: %s%s", opts.method(), c.baseURL, resource),
		valid:   validCodes,
		log:     c.log,
		results: results,
	}
}

// Resolved returns a future that yields value without issuing a request.
// Exists for mocks standing in for clients that hand out futures.
func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{value: value, ok: true}
	f.once.Do(func() {})
	return f
}

// Failed returns a future that resolves to (zero, false), mirroring a
// transport failure. Exists for mocks.
func Failed[T any]() *Future[T] {
	f := &Future[T]{}
	f.once.Do(func() {})
	return f
}

// Resolve blocks for the transport result, decodes it, and returns the
// value. The decode executes exactly once no matter how many times (or
// from how many goroutines) Resolve is called.
func (f *Future[T]) Resolve() (T, bool) {
	f.once.Do(f.retrieve)
	return f.value, f.ok
}

// Response returns the raw response after resolution. Nil until Resolve
// has been called, and nil forever when the transport failed.
func (f *Future[T]) Response() *Response {
	f.once.Do(f.retrieve)
	return f.response
}

func (f *Future[T]) retrieve() {
	res := <-f.results
	if res.err != nil {
		f.log.Error(fmt.Sprintf("Failed to retrieve %s (%v)", f.msg, res.err))
		return
	}
	f.response = res.response

	msg := fmt.Sprintf("%s %d (returned %d bytes)",
		f.msg, res.response.StatusCode, len(res.response.Body))

	if f.statusValid(res.response.StatusCode) {
		f.log.Debug(msg)
		f.log.Debug(security.SanitizeString(string(res.response.Body)))
	} else {
		f.log.Warn(msg)
		f.log.Info(security.SanitizeString(string(res.response.Body)))
	}

	if err := json.Unmarshal(res.response.Body, &f.value); err != nil {
		f.log.Error(fmt.Sprintf("Failed to decode %s (%v)", f.msg, err))
		return
	}
	f.ok = true
}

func (f *Future[T]) statusValid(code int) bool {
	for _, valid := range f.valid {
		if code == valid {
			return true
		}
	}
	return false
}
