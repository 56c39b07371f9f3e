package github

import (
	"context"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// APIClient defines the interface for GitHub API operations.
// This interface enables dependency injection and facilitates black box
// testing by allowing mock implementations to replace the real client.
//
// Error contract: operations either fail loudly (non-nil error, usually a
// [endpoint.StatusError]) or report absence through their return value;
// which one applies is documented per method on [Client].
type APIClient interface {
	// CurrentUser returns the authenticated user, cached per client.
	CurrentUser(ctx context.Context) (*User, error)

	// ListRepositories returns the repositories of the authenticated user.
	ListRepositories(ctx context.Context) ([]Repository, error)

	// GetRepository fetches a repository; errors on any non-200 status.
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)

	// GetRepositoryAsync starts a non-raising background fetch.
	GetRepositoryAsync(ctx context.Context, owner, repo string) *endpoint.Future[Repository]

	// GetFile returns the decoded contents of a file.
	GetFile(ctx context.Context, owner, repo, path string) ([]byte, error)

	// Fork forks a repository, optionally into an organisation.
	Fork(ctx context.Context, owner, repo, organisation string, block bool) (*Repository, error)

	// CreateWebhook creates a JSON push webhook on a repository.
	CreateWebhook(ctx context.Context, owner, repo, url, secret string, options WebhookOptions) error

	// GetHead returns the branch tip SHA, or "" when the lookup misses.
	GetHead(ctx context.Context, owner, repo, branch string) (string, error)

	// CommitFile creates or updates a file through the contents API.
	CommitFile(ctx context.Context, owner, repo, path string, content []byte, message, branch string) (bool, error)

	// CherryPick points branch at sha.
	CherryPick(ctx context.Context, owner, repo, sha, branch string, force bool) (string, error)

	// Merge merges sha into base, returning the merge commit SHA.
	Merge(ctx context.Context, owner, repo, sha, base string) (string, error)
}

// Ensure Client implements APIClient interface at compile time.
var _ APIClient = (*Client)(nil)
