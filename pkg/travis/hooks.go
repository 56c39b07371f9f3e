package travis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

type hookUpdate struct {
	ID     int64 `json:"id,omitempty"`
	Active bool  `json:"active"`
}

type hookUpdateRequest struct {
	Hook hookUpdate `json:"hook"`
}

// GetHooks lists the hooks visible to the authenticated account.
func (c *Client) GetHooks(ctx context.Context) (*endpoint.Future[HooksResponse], error) {
	if err := c.ensureAuthenticated(); err != nil {
		return nil, err
	}
	return endpoint.Fetch[HooksResponse](ctx, c.endpoint, "/hooks", endpoint.Options{}), nil
}

// EnableHook switches a repository's Travis hook on. The per-hook route is
// tried first; older deployments only accept the collection route with the
// id in the body, so that is the fallback. Both routes failing is an error
// carrying the fallback's status.
func (c *Client) EnableHook(ctx context.Context, hookID int64) error {
	if err := c.ensureAuthenticated(); err != nil {
		return err
	}

	resource := fmt.Sprintf("/hooks/%d", hookID)
	opts, err := endpoint.JSONPayload(http.MethodPut, hookUpdateRequest{
		Hook: hookUpdate{Active: true},
	})
	if err != nil {
		return fmt.Errorf("encoding hook update: %w", err)
	}

	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return fmt.Errorf("enabling hook %d: %w", hookID, err)
	}
	if response.Success() {
		return nil
	}

	c.log.Debug(fmt.Sprintf("Per-hook route refused with %d for hook %d, retrying against the collection",
		response.StatusCode, hookID))

	opts, err = endpoint.JSONPayload(http.MethodPut, hookUpdateRequest{
		Hook: hookUpdate{ID: hookID, Active: true},
	})
	if err != nil {
		return fmt.Errorf("encoding hook update: %w", err)
	}

	response, err = c.endpoint.Do(ctx, "/hooks", opts)
	if err != nil {
		return fmt.Errorf("enabling hook %d: %w", hookID, err)
	}
	if !response.Success() {
		return endpoint.NewStatusError("enable hook", "/hooks", response)
	}
	return nil
}
