package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// GetFile fetches a file from the repository's default branch and returns
// its decoded contents. Fails with a [endpoint.StatusError] on any non-200
// status and with ErrBadEncoding when the API reports an encoding other
// than base64.
func (c *Client) GetFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	resource := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	response, err := c.endpoint.Do(ctx, resource, endpoint.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s/%s: %w", owner, repo, path, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, endpoint.NewStatusError("get file", fmt.Sprintf("%s/%s/%s", owner, repo, path), response)
	}

	var file fileContent
	if err := response.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding contents of %s: %w", path, err)
	}
	if file.Encoding != "base64" {
		return nil, fmt.Errorf("%w: got %q for %s", errBadEncoding, file.Encoding, path)
	}

	// The contents API wraps base64 at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 content of %s: %w", path, err)
	}
	return raw, nil
}

// CommitFile creates or updates a file on branch through the contents API.
// The committer identity comes from the cached current user. Returns true
// when the remote reports the expected status: 201 for a newly created
// file, 200 for an update of an existing one.
func (c *Client) CommitFile(ctx context.Context, owner, repo, path string, content []byte, message, branch string) (bool, error) {
	resource := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)

	sha, err := c.lookupFileSHA(ctx, resource, path, branch)
	if err != nil {
		return false, err
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return false, err
	}

	request := commitFileRequest{
		Path:    path,
		Message: message,
		Branch:  branch,
		Content: base64.StdEncoding.EncodeToString(content),
		Committer: committer{
			Name:  user.Name,
			Email: user.Email,
		},
		SHA: sha,
	}

	opts, err := endpoint.JSONPayload(http.MethodPut, request)
	if err != nil {
		return false, fmt.Errorf("encoding commit payload for %s: %w", path, err)
	}

	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return false, fmt.Errorf("committing %s to %s/%s: %w", path, owner, repo, err)
	}

	if sha == "" {
		return response.StatusCode == http.StatusCreated, nil
	}
	return response.StatusCode == http.StatusOK, nil
}

// lookupFileSHA finds the SHA of path on branch when it already exists.
// A 404 means the file does not exist yet and yields an empty SHA.
func (c *Client) lookupFileSHA(ctx context.Context, resource, path, branch string) (string, error) {
	opts, err := endpoint.JSONPayload(http.MethodGet, map[string]string{
		"path": path,
		"ref":  branch,
	})
	if err != nil {
		return "", fmt.Errorf("encoding lookup payload for %s: %w", path, err)
	}

	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w", path, err)
	}
	if response.StatusCode == http.StatusNotFound {
		return "", nil
	}

	var current fileContent
	if err := response.Decode(&current); err != nil {
		return "", fmt.Errorf("decoding existing file %s: %w", path, err)
	}
	return current.SHA, nil
}
