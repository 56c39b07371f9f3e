// Package github provides GitHub API client operations.
//
// The client is a thin wrapper over the REST v3 surface: it builds raw
// requests through pkg/endpoint and maps status codes onto the
// per-operation contracts documented on each method. Some operations fail
// loudly with a [endpoint.StatusError]; others (GetHead) treat "not found"
// as a normal empty result. The asymmetry is deliberate and documented
// per method.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/pkg/endpoint"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// acceptMediaType pins the v3 JSON media type.
	acceptMediaType = "application/vnd.github.v3+json"
)

// Client represents a GitHub API client.
//
// The current-user value is computed once per client lifetime and cached.
// The cache is instance-local and not goroutine-safe: concurrent calls
// before it is populated may fetch more than once.
type Client struct {
	endpoint *endpoint.Client
	log      *bullets.Logger
	user     *User
}

// NewClient creates a GitHub client. An empty baseURL selects the public
// API. The token is attached to every request as `Authorization: token …`.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ep := endpoint.New(baseURL, acceptMediaType)
	if token != "" {
		ep.SetToken(token)
	}
	return &Client{
		endpoint: ep,
		log:      logger.NoLogger(),
	}
}

// NewFromEnv creates a client for the public API authenticated with the
// GITHUB_TOKEN environment variable.
func NewFromEnv() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, errTokenRequired
	}
	return NewClient("", token), nil
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

// CurrentUser returns the authenticated user. The value is fetched once
// and cached for the life of the client.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if c.user != nil {
		return c.user, nil
	}

	response, err := c.endpoint.Do(ctx, "/user", endpoint.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, endpoint.NewStatusError("get current user", "/user", response)
	}

	var user User
	if err := response.Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding current user: %w", err)
	}
	c.user = &user
	return c.user, nil
}

// ListRepositories returns the repositories of the authenticated user.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Info("Fetching repos of " + user.Login)
	resource := fmt.Sprintf("/users/%s/repos", user.Login)
	response, err := c.endpoint.Do(ctx, resource, endpoint.Options{})
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, endpoint.NewStatusError("list repositories", user.Login, response)
	}

	var repositories []Repository
	if err := response.Decode(&repositories); err != nil {
		return nil, fmt.Errorf("decoding repository list: %w", err)
	}
	return repositories, nil
}

// GetRepository fetches a repository by owner and name. Returns a
// [endpoint.StatusError] on any non-200 status.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	resource := fmt.Sprintf("/repos/%s/%s", owner, repo)
	response, err := c.endpoint.Do(ctx, resource, endpoint.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s/%s: %w", owner, repo, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, endpoint.NewStatusError("get repository", owner+"/"+repo, response)
	}

	var repository Repository
	if err := response.Decode(&repository); err != nil {
		return nil, fmt.Errorf("decoding repository %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}

// GetRepositoryAsync starts fetching a repository and returns a future for
// the result. The future never raises: a transport failure resolves to an
// empty result.
func (c *Client) GetRepositoryAsync(ctx context.Context, owner, repo string) *endpoint.Future[Repository] {
	resource := fmt.Sprintf("/repos/%s/%s", owner, repo)
	return endpoint.Fetch[Repository](ctx, c.endpoint, resource, endpoint.Options{})
}

// Fork forks a repository for the authenticated user, or into organisation
// when non-empty. Forking is accepted asynchronously upstream, so the only
// supported mode waits for the 202 acknowledgement; block=false returns
// ErrNotImplemented. Any status other than 202 fails with a
// [endpoint.StatusError].
func (c *Client) Fork(ctx context.Context, owner, repo, organisation string, block bool) (*Repository, error) {
	if !block {
		return nil, errNotImplemented
	}

	opts := endpoint.Options{Method: http.MethodPost}
	var fullName string
	if organisation != "" {
		var err error
		opts, err = endpoint.JSONPayload(http.MethodPost, map[string]string{"organization": organisation})
		if err != nil {
			return nil, fmt.Errorf("encoding fork payload: %w", err)
		}
		fullName = organisation + "/" + repo
	} else {
		user, err := c.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		fullName = user.Login + "/" + repo
	}

	resource := fmt.Sprintf("/repos/%s/%s/forks", owner, repo)
	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return nil, fmt.Errorf("forking %s/%s: %w", owner, repo, err)
	}
	if response.StatusCode != http.StatusAccepted {
		return nil, endpoint.NewStatusError("fork", owner+"/"+repo, response)
	}

	c.log.Info(fmt.Sprintf("Forking %s/%s to %s returned %d",
		owner, repo, fullName, response.StatusCode))

	var fork Repository
	if err := response.Decode(&fork); err != nil {
		return nil, fmt.Errorf("decoding fork of %s/%s: %w", owner, repo, err)
	}
	return &fork, nil
}
