package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// mergeOutcomes maps the statuses the merge endpoint reports as success.
var mergeOutcomes = map[int]string{
	http.StatusCreated:   "successful",
	http.StatusAccepted:  "accepted",
	http.StatusNoContent: "no-op",
}

// GetHead returns the SHA of the tip of branch. A branch that does not
// exist (or any other non-200 status) yields an empty SHA with a nil
// error: this lookup deliberately never raises on remote status.
func (c *Client) GetHead(ctx context.Context, owner, repo, branch string) (string, error) {
	resource := fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, branch)
	response, err := c.endpoint.Do(ctx, resource, endpoint.Options{})
	if err != nil {
		return "", fmt.Errorf("fetching head of %s/%s@%s: %w", owner, repo, branch, err)
	}
	if response.StatusCode != http.StatusOK {
		return "", nil
	}

	var ref reference
	if err := response.Decode(&ref); err != nil {
		return "", fmt.Errorf("decoding ref of %s/%s@%s: %w", owner, repo, branch, err)
	}
	return ref.Object.SHA, nil
}

// CherryPick points branch at sha by patching the ref, optionally forcing
// a non-fast-forward update. Returns sha on success; any status other
// than 200 fails with a [endpoint.StatusError].
func (c *Client) CherryPick(ctx context.Context, owner, repo, sha, branch string, force bool) (string, error) {
	payload := struct {
		SHA   string `json:"sha"`
		Force bool   `json:"force"`
	}{SHA: sha, Force: force}

	opts, err := endpoint.JSONPayload(http.MethodPatch, payload)
	if err != nil {
		return "", fmt.Errorf("encoding cherry-pick payload: %w", err)
	}

	resource := fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, branch)
	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return "", fmt.Errorf("cherry-picking %s onto %s/%s: %w", sha, owner, repo, err)
	}

	msg := fmt.Sprintf("%s/%s <- %s", owner, repo, sha)
	if response.StatusCode != http.StatusOK {
		return "", endpoint.NewStatusError("cherry-pick", msg, response)
	}

	c.log.Info("Cherry-picked " + msg)
	return sha, nil
}

// Merge merges sha into base on the repository. The endpoint reports
// three success shapes (201 merged, 202 accepted, 204 already merged),
// all of which return the merge commit SHA from the response body, or an
// empty string when the body carries none (a no-op merge has no commit).
// A 409 conflict, a 404 for a missing base or head, and any other status
// fail with a [endpoint.StatusError].
func (c *Client) Merge(ctx context.Context, owner, repo, sha, base string) (string, error) {
	payload := struct {
		Base string `json:"base"`
		Head string `json:"head"`
	}{Base: base, Head: sha}

	opts, err := endpoint.JSONPayload(http.MethodPost, payload)
	if err != nil {
		return "", fmt.Errorf("encoding merge payload: %w", err)
	}

	resource := fmt.Sprintf("/repos/%s/%s/merges", owner, repo)
	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return "", fmt.Errorf("merging %s into %s/%s: %w", sha, owner, repo, err)
	}

	msg := fmt.Sprintf("%s/%s <- %s", owner, repo, sha)

	if outcome, ok := mergeOutcomes[response.StatusCode]; ok {
		c.log.Info(fmt.Sprintf("Merge %s (%s)", outcome, msg))

		var merged mergeResult
		if err := response.Decode(&merged); err != nil || merged.SHA == "" {
			c.log.Error(fmt.Sprintf("Unable to extract sha from merge response (%s)", msg))
			return "", nil
		}
		c.log.Info("Merge commit was " + merged.SHA)
		return merged.SHA, nil
	}

	switch response.StatusCode {
	case http.StatusConflict:
		c.log.Warn("Merge conflict! (" + msg + ")")
	case http.StatusNotFound:
		c.log.Warn("Merge base or head doesn't exist! (" + msg + ")")
	default:
		c.log.Warn(fmt.Sprintf("Unknown status %d (%s)", response.StatusCode, msg))
	}
	return "", endpoint.NewStatusError("merge", msg, response)
}
