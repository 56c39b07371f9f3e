// Package fixtures provides common test data structures for testing.
package fixtures

import (
	"encoding/base64"

	"github.com/sgaunet/gitci/pkg/github"
)

// GitHub fixtures for common test scenarios

// ValidUser returns an authenticated GitHub user for testing.
func ValidUser() *github.User {
	return &github.User{
		Login: "testuser",
		ID:    1,
		Name:  "Test User",
		Email: "testuser@example.com",
	}
}

// ValidRepository returns a GitHub repository record for testing.
func ValidRepository(owner, name string) *github.Repository {
	return &github.Repository{
		ID:            100,
		Name:          name,
		FullName:      owner + "/" + name,
		Owner:         github.User{Login: owner},
		DefaultBranch: "master",
		HTMLURL:       "https://github.com/" + owner + "/" + name,
		CloneURL:      "https://github.com/" + owner + "/" + name + ".git",
	}
}

// ForkedRepository returns the fork of repo under owner.
func ForkedRepository(owner, name string) *github.Repository {
	fork := ValidRepository(owner, name)
	fork.ID = 101
	fork.Fork = true
	return fork
}

// FileContentsBody returns a contents-API JSON body whose base64 content
// decodes to raw, wrapped at 60 columns the way the API wraps it.
func FileContentsBody(path string, raw []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(raw)
	wrapped := ""
	for len(encoded) > 60 {
		wrapped += encoded[:60] + "\n"
		encoded = encoded[60:]
	}
	wrapped += encoded

	body, _ := jsonMarshal(map[string]any{
		"type":     "file",
		"path":     path,
		"encoding": "base64",
		"content":  wrapped,
		"sha":      "abc123def456",
	})
	return body
}
