// Package endpoint provides the shared plumbing for the gitci REST clients:
// request building with instance defaults, a blocking client returning raw
// status/body pairs, and a lazy future for fire-and-continue fetches.
//
// The hosting and CI APIs both speak JSON over HTTPS but disagree on almost
// everything else (auth header shapes, versioned Accept media types, which
// status codes mean success), so the service clients in pkg/github and
// pkg/travis own those decisions and this package stays policy-free.
package endpoint

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/internal/security"
)

// defaultUserAgent identifies gitci on every outbound request unless the
// caller overrides the header.
const defaultUserAgent = "gitci/1.0.0"

// Client holds the per-service request defaults: base URL, versioned Accept
// media type, and an optional bearer credential.
//
// The credential is write-once in spirit: a second SetToken call is flagged
// loudly in the logs (with masked values) but the replacement is kept, so a
// misbehaving caller is visible without being bricked.
type Client struct {
	baseURL    string
	accept     string
	userAgent  string
	token      security.SecureToken
	httpClient *http.Client
	log        *bullets.Logger
}

// New creates a client for a remote API rooted at baseURL. The accept
// media type is applied to every request that does not set its own
// Accept header; pass "" to skip content negotiation.
func New(baseURL, accept string) *Client {
	return &Client{
		baseURL:    baseURL,
		accept:     accept,
		userAgent:  defaultUserAgent,
		httpClient: http.DefaultClient,
		log:        logger.NoLogger(),
	}
}

// SetLogger sets the logger for request/response tracing. Defaults to a
// silent logger.
func (c *Client) SetLogger(log *bullets.Logger) {
	c.log = log
}

// SetHTTPClient replaces the underlying HTTP client. Tests use this to
// point the client at an httptest server with its TLS configuration.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetToken stores the bearer credential attached to outgoing requests.
// Replacing a previously set credential is a caller error: it is logged
// at error level with masked before/after values, then applied anyway.
func (c *Client) SetToken(token string) {
	replacement := security.NewSecureToken(token)
	if !c.token.IsEmpty() {
		c.log.Error(fmt.Sprintf("Token has been set multiple times (%s replaced by %s)",
			c.token.String(), replacement.String()))
	}
	c.token = replacement
}

// Token returns the stored credential. The returned value masks itself
// in all string formatting.
func (c *Client) Token() security.SecureToken {
	return c.token
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a blocking request for resource (appended to the base URL) and
// returns the raw status/body result without interpreting either. The
// outcome is logged at info level for 2xx statuses and warn otherwise,
// with sanitized headers, payload, and body at debug level.
//
// Do does not decode JSON; that stays with the caller, matching the
// deferred path where decoding happens on first access.
func (c *Client) Do(ctx context.Context, resource string, opts Options) (*Response, error) {
	response, sentHeaders, err := c.send(ctx, resource, opts)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%s: %s%s %d (returned %d bytes)",
		opts.method(), c.baseURL, resource, response.StatusCode, len(response.Body))

	if response.Success() {
		c.log.Info(msg)
		c.log.Debug("Sent: " + security.SanitizeHeaders(sentHeaders))
		c.log.Debug("Payload: " + security.SanitizeString(string(opts.Payload)))
		c.log.Debug("Got: " + security.SanitizeString(string(response.Body)))
	} else {
		c.log.Warn(msg)
		c.log.Info("Sent: " + security.SanitizeHeaders(sentHeaders))
		c.log.Debug("Payload: " + security.SanitizeString(string(opts.Payload)))
		c.log.Info(security.SanitizeString(string(response.Body)))
	}

	return response, nil
}

// send performs the request without logging. Shared by Do and the future
// goroutine launched by Fetch, which defers its logging to resolution time.
func (c *Client) send(ctx context.Context, resource string, opts Options) (*Response, http.Header, error) {
	request, cancel, err := c.buildRequest(ctx, resource, opts)
	if err != nil {
		return nil, nil, err
	}
	defer cancel()

	httpResponse, err := c.clientFor(opts).Do(request)
	if err != nil {
		return nil, request.Header, fmt.Errorf("%s %s%s: %w", opts.method(), c.baseURL, resource, security.SanitizeError(err))
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, request.Header, fmt.Errorf("reading response from %s%s: %w", c.baseURL, resource, err)
	}

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       body,
	}, request.Header, nil
}
