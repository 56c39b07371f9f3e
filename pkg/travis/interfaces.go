package travis

import (
	"context"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/gitci/pkg/endpoint"
)

// API defines the Travis CI operations used by the rest of the tool.
type API interface {
	SetLogger(log *bullets.Logger)
	Authenticated() bool
	Login(ctx context.Context, githubToken string) error
	GetRepository(ctx context.Context, owner, repo string) *endpoint.Future[RepositoryResponse]
	GetBuild(ctx context.Context, buildID int64) *endpoint.Future[BuildResponse]
	GetJob(ctx context.Context, jobID int64) *endpoint.Future[JobResponse]
	GetHooks(ctx context.Context) (*endpoint.Future[HooksResponse], error)
	EnableHook(ctx context.Context, hookID int64) error
	Sync(ctx context.Context, block bool, poll PollConfig) error
	IsSynced(ctx context.Context) (bool, error)
	UpdateSettings(ctx context.Context, repoID int64, settings Settings) (bool, error)
	RepositoryKey(ctx context.Context, slug string) (string, error)
	Encrypt(ctx context.Context, slug, value string) (string, error)
}

var _ API = (*Client)(nil)
