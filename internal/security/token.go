package security

import (
	"fmt"
	"strings"
)

const (
	// Minimum token length to show partial masking (show last 4 chars).
	minTokenLengthForPartialMask = 8
	// Number of characters to show when masking.
	maskShowChars = 4
	// maskEmpty is returned for empty tokens.
	maskEmpty = "[empty]"
	// maskRedacted is returned for short tokens.
	maskRedacted = "[redacted]"
)

// tokenPrefixes are the credential shapes gitci carries. Keeping the
// prefix visible in the mask tells a GitHub token apart from a Travis
// access token in the logs without exposing either.
var tokenPrefixes = []string{"github_pat_", "ghp_", "gho_"}

// SecureToken wraps a credential so it cannot leak through string
// formatting: String() and GoString() return a masked value.
//
// Example:
//
//	token := NewSecureToken("ghp_secret123456")
//	fmt.Printf("Token: %s", token) // Output: "Token: [token:ghp_****3456]"
type SecureToken struct {
	value string
}

// NewSecureToken creates a new SecureToken from a string value.
func NewSecureToken(token string) SecureToken {
	return SecureToken{value: token}
}

// String implements fmt.Stringer and returns a masked representation:
// a recognized issuer prefix (if any) plus the last four characters.
func (t SecureToken) String() string {
	value := t.value

	// The Travis client stores its credential in quoted form; mask the
	// credential inside the quotes, not the quotes.
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	if value == "" {
		return maskEmpty
	}
	if len(value) < minTokenLengthForPartialMask {
		return maskRedacted
	}

	prefix := ""
	for _, candidate := range tokenPrefixes {
		// Never echo the prefix when prefix plus suffix would spell out
		// most of the credential.
		if strings.HasPrefix(value, candidate) && len(value) >= len(candidate)+2*maskShowChars {
			prefix = candidate
			break
		}
	}

	lastChars := value[len(value)-maskShowChars:]
	return fmt.Sprintf("[token:%s****%s]", prefix, lastChars)
}

// Value returns the actual token value. Never log or print the result.
func (t SecureToken) Value() string {
	return t.value
}

// IsEmpty returns true if the token is empty.
func (t SecureToken) IsEmpty() bool {
	return t.value == ""
}

// GoString implements fmt.GoStringer to prevent leaking in %#v formatting.
func (t SecureToken) GoString() string {
	return t.String()
}
