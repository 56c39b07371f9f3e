// Package mocks provides call-tracking mock implementations of the
// service interfaces, for testing the setup orchestration without HTTP.
package mocks

import (
	"context"
	"sync"

	"github.com/sgaunet/gitci/pkg/github"
)

// MethodCall represents a tracked method call with its parameters.
type MethodCall struct {
	Method string
	Args   map[string]any
}

// GitHubClient is a mock implementation of setup.SourceControl with call
// tracking.
type GitHubClient struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	CurrentUserResponse   *github.User
	CurrentUserError      error
	GetRepositoryResponse *github.Repository
	GetRepositoryError    error
	ForkResponse          *github.Repository
	ForkError             error
	CreateWebhookError    error
	GetFileResponse       []byte
	GetFileError          error
	CommitFileOK          bool
	CommitFileError       error
}

// NewGitHubClient creates a new mock GitHub client.
func NewGitHubClient() *GitHubClient {
	return &GitHubClient{
		calls: make([]MethodCall, 0),
		CurrentUserResponse: &github.User{
			Login: "mockuser",
			Name:  "Mock User",
			Email: "mock@example.com",
		},
		CommitFileOK: true,
	}
}

// CurrentUser implements setup.SourceControl.
func (m *GitHubClient) CurrentUser(_ context.Context) (*github.User, error) {
	m.trackCall("CurrentUser", map[string]any{})
	return m.CurrentUserResponse, m.CurrentUserError
}

// GetRepository implements setup.SourceControl.
func (m *GitHubClient) GetRepository(_ context.Context, owner, repo string) (*github.Repository, error) {
	m.trackCall("GetRepository", map[string]any{
		"owner": owner,
		"repo":  repo,
	})
	return m.GetRepositoryResponse, m.GetRepositoryError
}

// Fork implements setup.SourceControl.
func (m *GitHubClient) Fork(_ context.Context, owner, repo, organisation string, block bool) (*github.Repository, error) {
	m.trackCall("Fork", map[string]any{
		"owner":        owner,
		"repo":         repo,
		"organisation": organisation,
		"block":        block,
	})
	return m.ForkResponse, m.ForkError
}

// CreateWebhook implements setup.SourceControl.
func (m *GitHubClient) CreateWebhook(_ context.Context, owner, repo, url, secret string, options github.WebhookOptions) error {
	m.trackCall("CreateWebhook", map[string]any{
		"owner":     owner,
		"repo":      repo,
		"url":       url,
		"secret":    secret,
		"events":    options.Events,
		"verifySSL": options.VerifySSL,
	})
	return m.CreateWebhookError
}

// GetFile implements setup.SourceControl.
func (m *GitHubClient) GetFile(_ context.Context, owner, repo, path string) ([]byte, error) {
	m.trackCall("GetFile", map[string]any{
		"owner": owner,
		"repo":  repo,
		"path":  path,
	})
	return m.GetFileResponse, m.GetFileError
}

// CommitFile implements setup.SourceControl.
func (m *GitHubClient) CommitFile(_ context.Context, owner, repo, path string, content []byte, message, branch string) (bool, error) {
	m.trackCall("CommitFile", map[string]any{
		"owner":   owner,
		"repo":    repo,
		"path":    path,
		"content": string(content),
		"message": message,
		"branch":  branch,
	})
	return m.CommitFileOK, m.CommitFileError
}

// GetCalls returns a copy of all tracked calls.
func (m *GitHubClient) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *GitHubClient) GetCallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

// GetLastCall returns the last call to the specified method, or nil if not called.
func (m *GitHubClient) GetLastCall(method string) *MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			return &m.calls[i]
		}
	}
	return nil
}

func (m *GitHubClient) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}
