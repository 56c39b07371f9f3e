package setup

import (
	"context"

	"github.com/sgaunet/gitci/pkg/endpoint"
	"github.com/sgaunet/gitci/pkg/github"
	"github.com/sgaunet/gitci/pkg/travis"
)

// SourceControl is the slice of the GitHub surface the flow drives.
type SourceControl interface {
	CurrentUser(ctx context.Context) (*github.User, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	Fork(ctx context.Context, owner, repo, organisation string, block bool) (*github.Repository, error)
	CreateWebhook(ctx context.Context, owner, repo, url, secret string, options github.WebhookOptions) error
	GetFile(ctx context.Context, owner, repo, path string) ([]byte, error)
	CommitFile(ctx context.Context, owner, repo, path string, content []byte, message, branch string) (bool, error)
}

// CI is the slice of the Travis surface the flow drives.
type CI interface {
	Authenticated() bool
	Login(ctx context.Context, githubToken string) error
	Sync(ctx context.Context, block bool, poll travis.PollConfig) error
	GetHooks(ctx context.Context) (*endpoint.Future[travis.HooksResponse], error)
	EnableHook(ctx context.Context, hookID int64) error
	GetRepository(ctx context.Context, owner, repo string) *endpoint.Future[travis.RepositoryResponse]
	UpdateSettings(ctx context.Context, repoID int64, settings travis.Settings) (bool, error)
	Encrypt(ctx context.Context, slug, value string) (string, error)
}

// Confirmer asks the user before a mutating step. The flow treats a nil
// Confirmer as consent to everything.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

var (
	_ SourceControl = (github.APIClient)(nil)
	_ CI            = (travis.API)(nil)
)
