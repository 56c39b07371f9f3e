// Package urlutil provides URL parsing utilities for extracting path components
// from git remote URLs.
//
// It handles three URL formats:
//   - HTTPS: https://github.com/owner/repo
//   - SSH colon: git@github.com:owner/repo
//   - SSH protocol: ssh://git@github.com/owner/repo
package urlutil

import "strings"

const (
	// minColonParts is the minimum number of parts expected when splitting SSH colon format URLs.
	// SSH colon format: git@host:path splits into ["git@host", "path"].
	minColonParts = 2

	// ownerRepoParts is the number of path components in an owner/repo pair.
	ownerRepoParts = 2
)

// ExtractPathComponents extracts the last N path components from a git remote URL.
// The componentCount parameter specifies how many path components to extract.
// Returns empty string if the URL doesn't contain enough components.
//
// The caller should trim the .git suffix before calling this function;
// [SplitOwnerRepo] does that for the common case.
//
// Examples:
//
//	ExtractPathComponents("git@github.com:owner/repo", 2) → "owner/repo"
//	ExtractPathComponents("https://github.com/owner/repo", 2) → "owner/repo"
func ExtractPathComponents(url string, componentCount int) string {
	// Handle ssh:// protocol format separately from git@ colon format
	if strings.HasPrefix(url, "ssh://git@") {
		// SSH protocol format: ssh://git@host/path
		parts := strings.Split(url, "/")
		if len(parts) >= componentCount {
			return strings.Join(parts[len(parts)-componentCount:], "/")
		}
		return ""
	}

	if strings.HasPrefix(url, "git@") {
		// SSH colon format: git@host:path
		parts := strings.Split(url, ":")
		if len(parts) >= minColonParts {
			// Return everything after the last colon
			return parts[len(parts)-1]
		}
		return ""
	}

	// HTTPS format
	parts := strings.Split(url, "/")
	if len(parts) >= componentCount {
		return strings.Join(parts[len(parts)-componentCount:], "/")
	}
	return ""
}

// SplitOwnerRepo extracts the (owner, repo) pair from a git remote URL,
// trimming any trailing .git suffix. Returns ok=false when the URL does
// not carry two trailing path components.
//
// Example:
//
//	SplitOwnerRepo("git@github.com:sgaunet/gitci.git") → ("sgaunet", "gitci", true)
func SplitOwnerRepo(url string) (owner, repo string, ok bool) {
	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	ownerRepo := ExtractPathComponents(url, ownerRepoParts)
	if ownerRepo == "" {
		return "", "", false
	}

	parts := strings.Split(ownerRepo, "/")
	if len(parts) != ownerRepoParts || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
