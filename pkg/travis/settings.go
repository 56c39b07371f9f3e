package travis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// UpdateSettings patches the repository's CI settings; only the non-nil
// fields of settings are sent. Requires a prior login. Returns true iff
// the remote acknowledged with a 200.
func (c *Client) UpdateSettings(ctx context.Context, repoID int64, settings Settings) (bool, error) {
	if err := c.ensureAuthenticated(); err != nil {
		return false, err
	}

	opts, err := endpoint.JSONPayload(http.MethodPatch, map[string]Settings{
		"settings": settings,
	})
	if err != nil {
		return false, fmt.Errorf("encoding settings payload: %w", err)
	}

	resource := fmt.Sprintf("/repos/%d/settings", repoID)
	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return false, fmt.Errorf("updating settings of repo %d: %w", repoID, err)
	}
	return response.StatusCode == http.StatusOK, nil
}
