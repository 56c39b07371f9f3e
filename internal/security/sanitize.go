package security

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

var (
	// Token regex patterns compiled once using sync.Once for performance.
	githubTokenRegex *regexp.Regexp
	travisTokenRegex *regexp.Regexp
	authHeaderRegex  *regexp.Regexp
	bearerTokenRegex *regexp.Regexp
	regexOnce        sync.Once

	// errSanitized is the error type for sanitized errors.
	errSanitized = errors.New("sanitized error")
)

// compileRegexPatterns initializes all regex patterns once.
func compileRegexPatterns() {
	regexOnce.Do(func() {
		// GitHub personal access tokens: ghp_/gho_/ghs_ + 20+ chars
		// Real tokens are 36+ chars, but we catch shorter ones for safety
		githubTokenRegex = regexp.MustCompile(`gh[ops]_[a-zA-Z0-9]{20,}`)

		// Travis access tokens appear in the quoted form the API expects:
		// token "20+ alphanumeric chars"
		travisTokenRegex = regexp.MustCompile(`"[a-zA-Z0-9_-]{20,}"`)

		// Authorization headers: "Authorization: token <value>" as sent by
		// the request builder, plus Bearer/Basic for completeness
		authHeaderRegex = regexp.MustCompile(`(?i)authorization:\s*(?:token|bearer|basic)\s+"?[a-zA-Z0-9+/=_-]{10,}"?`)

		// Generic bearer tokens: long base64-like strings (40-200 chars)
		bearerTokenRegex = regexp.MustCompile(`\b[A-Za-z0-9+/=]{40,200}\b`)
	})
}

// SanitizeString removes sensitive tokens from a string using compiled regex
// patterns. It detects and redacts GitHub tokens (ghp_/gho_/ghs_*), quoted
// Travis access tokens, authorization headers, and generic bearer tokens.
// This provides defense-in-depth protection against token leakage in the
// request/response bodies and headers logged at debug level.
//
// Thread Safety: Safe for concurrent use after first call (regex patterns compiled via sync.Once).
func SanitizeString(s string) string {
	compileRegexPatterns()

	// Replace authorization headers first so the token patterns below
	// don't leave the header name dangling
	s = authHeaderRegex.ReplaceAllString(s, "Authorization: [redacted]")

	// Replace GitHub tokens
	s = githubTokenRegex.ReplaceAllString(s, "[github-token-redacted]")

	// Replace quoted Travis tokens
	s = travisTokenRegex.ReplaceAllString(s, "[travis-token-redacted]")

	// Replace generic bearer tokens (do this last to avoid over-redaction)
	// Only redact if not already redacted by previous patterns
	if strings.Contains(s, "ghp_") || strings.Contains(s, "gho_") ||
		strings.Contains(s, "ghs_") {
		return s
	}
	s = bearerTokenRegex.ReplaceAllString(s, "[token-redacted]")

	return s
}

// SanitizeError wraps an error with [SanitizeString] applied to its message.
// Returns nil if err is nil. The original error chain is not preserved;
// the returned error wraps an internal errSanitized sentinel.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	sanitized := SanitizeString(err.Error())
	return fmt.Errorf("%w: %s", errSanitized, sanitized)
}

// SanitizeHeaders renders an HTTP header map as a single log-safe string.
// The Authorization value is always redacted; everything else passes
// through [SanitizeString].
func SanitizeHeaders(headers http.Header) string {
	if len(headers) == 0 {
		return "{}"
	}

	parts := make([]string, 0, len(headers))
	for name, values := range headers {
		value := strings.Join(values, ", ")
		if strings.EqualFold(name, "Authorization") {
			value = "[redacted]"
		} else {
			value = SanitizeString(value)
		}
		parts = append(parts, name+": "+value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
