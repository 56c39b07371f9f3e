package mocks

import (
	"context"
	"sync"

	"github.com/sgaunet/gitci/pkg/endpoint"
	"github.com/sgaunet/gitci/pkg/travis"
)

// TravisClient is a mock implementation of setup.CI with call tracking.
type TravisClient struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	AuthenticatedValue    bool
	LoginError            error
	SyncError             error
	GetHooksResponse      travis.HooksResponse
	GetHooksError         error
	GetHooksResolveFails  bool
	EnableHookError       error
	GetRepositoryResponse travis.RepositoryResponse
	UpdateSettingsOK      bool
	UpdateSettingsError   error
	EncryptResponse       string
	EncryptError          error
}

// NewTravisClient creates a new mock Travis client, already authenticated.
func NewTravisClient() *TravisClient {
	return &TravisClient{
		calls:              make([]MethodCall, 0),
		AuthenticatedValue: true,
		UpdateSettingsOK:   true,
		EncryptResponse:    "c2VhbGVk",
	}
}

// Authenticated implements setup.CI.
func (m *TravisClient) Authenticated() bool {
	m.trackCall("Authenticated", map[string]any{})
	return m.AuthenticatedValue
}

// Login implements setup.CI. A successful login flips Authenticated.
func (m *TravisClient) Login(_ context.Context, githubToken string) error {
	m.trackCall("Login", map[string]any{
		"githubToken": githubToken,
	})
	if m.LoginError == nil {
		m.AuthenticatedValue = true
	}
	return m.LoginError
}

// Sync implements setup.CI.
func (m *TravisClient) Sync(_ context.Context, block bool, poll travis.PollConfig) error {
	m.trackCall("Sync", map[string]any{
		"block": block,
		"poll":  poll,
	})
	return m.SyncError
}

// GetHooks implements setup.CI.
func (m *TravisClient) GetHooks(_ context.Context) (*endpoint.Future[travis.HooksResponse], error) {
	m.trackCall("GetHooks", map[string]any{})
	if m.GetHooksError != nil {
		return nil, m.GetHooksError
	}
	if m.GetHooksResolveFails {
		return endpoint.Failed[travis.HooksResponse](), nil
	}
	return endpoint.Resolved(m.GetHooksResponse), nil
}

// EnableHook implements setup.CI.
func (m *TravisClient) EnableHook(_ context.Context, hookID int64) error {
	m.trackCall("EnableHook", map[string]any{
		"hookID": hookID,
	})
	return m.EnableHookError
}

// GetRepository implements setup.CI.
func (m *TravisClient) GetRepository(_ context.Context, owner, repo string) *endpoint.Future[travis.RepositoryResponse] {
	m.trackCall("GetRepository", map[string]any{
		"owner": owner,
		"repo":  repo,
	})
	return endpoint.Resolved(m.GetRepositoryResponse)
}

// UpdateSettings implements setup.CI.
func (m *TravisClient) UpdateSettings(_ context.Context, repoID int64, settings travis.Settings) (bool, error) {
	m.trackCall("UpdateSettings", map[string]any{
		"repoID":   repoID,
		"settings": settings,
	})
	return m.UpdateSettingsOK, m.UpdateSettingsError
}

// Encrypt implements setup.CI.
func (m *TravisClient) Encrypt(_ context.Context, slug, value string) (string, error) {
	m.trackCall("Encrypt", map[string]any{
		"slug":  slug,
		"value": value,
	})
	return m.EncryptResponse, m.EncryptError
}

// GetCalls returns a copy of all tracked calls.
func (m *TravisClient) GetCalls() []MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MethodCall{}, m.calls...)
}

// GetCallCount returns the number of times a method was called.
func (m *TravisClient) GetCallCount(method string) int {
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
func (m *TravisClient) GetLastCall(method string) *MethodCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			return &m.calls[i]
		}
	}
	return nil
}

func (m *TravisClient) trackCall(method string, args map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{
		Method: method,
		Args:   args,
	})
}
