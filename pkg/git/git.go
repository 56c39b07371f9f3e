// Package git inspects the local repository so the CLI can infer which
// hosted repository it is working against.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/sgaunet/gitci/internal/urlutil"
)

var (
	errNoRemoteURL      = errors.New("no URLs found for remote")
	errDetachedHead     = errors.New("HEAD is not pointing to a branch")
	errNoMainBranch     = errors.New("could not determine main branch")
	errUnparsableRemote = errors.New("could not extract owner/repo from remote URL")
)

type Repository struct {
	repo *git.Repository
}

// OpenRepository opens the repository containing path, searching parent
// directories the way the git CLI does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{repo: repo}, nil
}

// GetCurrentBranch returns the short name of the checked-out branch.
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", errDetachedHead
	}

	return head.Name().Short(), nil
}

// GetMainBranch returns the default branch, preferring the remote HEAD
// and falling back to the usual names.
func (r *Repository) GetMainBranch() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin remote: %w", err)
	}

	refs, err := remote.List(&git.ListOptions{})
	if err == nil {
		for _, ref := range refs {
			if ref.Name() == plumbing.HEAD {
				target := ref.Target()
				if target.IsBranch() {
					return target.Short(), nil
				}
			}
		}
	}

	for _, defaultBranch := range []string{"main", "master"} {
		if r.branchExists(defaultBranch) {
			return defaultBranch, nil
		}
	}

	return "", errNoMainBranch
}

func (r *Repository) branchExists(branchName string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(branchName), true)
	return err == nil
}

// GetRemoteURL returns the first URL configured for the named remote.
func (r *Repository) GetRemoteURL(remoteName string) (string, error) {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", errNoRemoteURL, remoteName)
	}

	return urls[0], nil
}

// OwnerRepo extracts the (owner, repo) pair from the origin remote URL.
func (r *Repository) OwnerRepo() (string, string, error) {
	url, err := r.GetRemoteURL("origin")
	if err != nil {
		return "", "", err
	}

	owner, repo, ok := urlutil.SplitOwnerRepo(url)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", errUnparsableRemote, url)
	}
	return owner, repo, nil
}
