package fixtures

import (
	"encoding/json"

	"github.com/sgaunet/gitci/pkg/travis"
)

func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Travis fixtures for common test scenarios

// ActiveHook returns an already-enabled Travis hook for owner/repo.
func ActiveHook(owner, repo string) travis.Hook {
	return travis.Hook{
		ID:        500,
		Name:      repo,
		OwnerName: owner,
		Active:    true,
		Admin:     true,
	}
}

// InactiveHook returns a disabled Travis hook for owner/repo.
func InactiveHook(owner, repo string) travis.Hook {
	hook := ActiveHook(owner, repo)
	hook.Active = false
	return hook
}

// KnownRepository returns a Travis repository envelope for owner/repo.
func KnownRepository(owner, repo string) travis.RepositoryResponse {
	return travis.RepositoryResponse{
		Repo: travis.Repository{
			ID:     200,
			Slug:   owner + "/" + repo,
			Active: true,
		},
	}
}

// PassedBuildBody returns the JSON envelope of a passed build.
func PassedBuildBody(buildID int64) []byte {
	body, _ := jsonMarshal(travis.BuildResponse{
		Build: travis.Build{
			ID:     buildID,
			Number: "1",
			State:  "passed",
			JobIDs: []int64{buildID * 10},
		},
	})
	return body
}

// SyncingUserBody returns the /users/ envelope with the sync flag set.
func SyncingUserBody(syncing bool) []byte {
	body, _ := jsonMarshal(map[string]any{
		"user": map[string]any{
			"is_syncing": syncing,
			"synced_at":  "2019-04-01T10:00:00Z",
		},
	})
	return body
}
