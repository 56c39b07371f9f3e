// Package travis provides Travis CI API client operations.
//
// The client wraps the v2 REST surface through pkg/endpoint. Resource
// reads (repository, build, job, hooks) come back as futures resolved on
// first access; mutations are blocking. Every operation that needs an
// access token calls an explicit authentication guard: callers either
// construct the client with a token or exchange a GitHub token via
// [Client.Login] first.
package travis

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/pkg/endpoint"
)

const (
	// DefaultBaseURL is the public Travis CI API root.
	DefaultBaseURL = "https://api.travis-ci.org"

	// acceptMediaType pins the v2 JSON media type.
	acceptMediaType = "application/vnd.travis-ci.2+json"
)

// Client represents a Travis CI API client.
//
// The per-repository public keys are cached per client instance. The
// cache is not goroutine-safe: interleaved first fetches for the same
// repository may hit the API more than once.
type Client struct {
	endpoint *endpoint.Client
	log      *bullets.Logger
	keys     map[string]string
}

// NewClient creates a Travis client. An empty baseURL selects the public
// API. A non-empty token is stored immediately in the quoted form the API
// expects; pass "" and call [Client.Login] to exchange a GitHub token
// instead.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ep := endpoint.New(baseURL, acceptMediaType)
	if token != "" {
		ep.SetToken(strconv.Quote(token))
	}
	return &Client{
		endpoint: ep,
		log:      logger.NoLogger(),
		keys:     make(map[string]string),
	}
}

// NewFromEnv creates a client for the public API authenticated with the
// TRAVIS_TOKEN environment variable when set; without it the client
// starts unauthenticated and needs [Client.Login].
func NewFromEnv() *Client {
	return NewClient("", os.Getenv("TRAVIS_TOKEN"))
}

// SetLogger sets the logger for the client and its request plumbing.
func (c *Client) SetLogger(log *bullets.Logger) {
	c.log = log
	c.endpoint.SetLogger(log)
}

// SetHTTPClient replaces the underlying HTTP client. Mainly for tests.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.endpoint.SetHTTPClient(httpClient)
}

// Authenticated reports whether the client holds an access token.
func (c *Client) Authenticated() bool {
	return !c.endpoint.Token().IsEmpty()
}

// Login exchanges a GitHub token for a Travis access token. Idempotent:
// when the client is already authenticated the call logs and returns
// without touching the stored credential.
func (c *Client) Login(ctx context.Context, githubToken string) error {
	if c.Authenticated() {
		c.log.Info("Already logged into Travis as " + c.endpoint.Token().String())
		return nil
	}

	opts, err := endpoint.JSONPayload(http.MethodPost, map[string]string{
		"github_token": githubToken,
	})
	if err != nil {
		return fmt.Errorf("encoding login payload: %w", err)
	}

	response, err := c.endpoint.Do(ctx, "/auth/github", opts)
	if err != nil {
		return fmt.Errorf("logging into Travis: %w", err)
	}
	if !response.Success() {
		return endpoint.NewStatusError("login", "/auth/github", response)
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := response.Decode(&auth); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	if auth.AccessToken == "" {
		return errLoginFailed
	}

	c.endpoint.SetToken(strconv.Quote(auth.AccessToken))
	c.log.Info("Logged in to Travis as " + c.endpoint.Token().String())
	return nil
}

// ensureAuthenticated guards the operations that require a prior login.
func (c *Client) ensureAuthenticated() error {
	if !c.Authenticated() {
		return errNotAuthenticated
	}
	return nil
}

// GetRepository starts fetching a repository by owner and name. The
// result resolves on first access.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) *endpoint.Future[RepositoryResponse] {
	resource := fmt.Sprintf("/repos/%s/%s", owner, repo)
	return endpoint.Fetch[RepositoryResponse](ctx, c.endpoint, resource, endpoint.Options{})
}

// GetBuild starts fetching a build by id.
func (c *Client) GetBuild(ctx context.Context, buildID int64) *endpoint.Future[BuildResponse] {
	resource := fmt.Sprintf("/builds/%d", buildID)
	return endpoint.Fetch[BuildResponse](ctx, c.endpoint, resource, endpoint.Options{})
}

// GetJob starts fetching a job by id.
func (c *Client) GetJob(ctx context.Context, jobID int64) *endpoint.Future[JobResponse] {
	resource := fmt.Sprintf("/jobs/%d", jobID)
	return endpoint.Fetch[JobResponse](ctx, c.endpoint, resource, endpoint.Options{})
}
