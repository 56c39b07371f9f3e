package security_test

import (
	"fmt"
	"testing"

	"github.com/sgaunet/gitci/internal/security"
)

func TestSecureTokenMasking(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "empty token",
			token: "",
			want:  "[empty]",
		},
		{
			name:  "short token fully redacted",
			token: "abc123",
			want:  "[redacted]",
		},
		{
			name:  "long token shows last four",
			token: "very-long-opaque-credential",
			want:  "[token:****tial]",
		},
		{
			name:  "github token keeps its issuer prefix",
			token: "ghp_secret123456",
			want:  "[token:ghp_****3456]",
		},
		{
			name:  "fine grained github token keeps its issuer prefix",
			token: "github_pat_11ABCDEFG0123456789xyz",
			want:  "[token:github_pat_****9xyz]",
		},
		{
			name:  "prefix suppressed when it would spell out the credential",
			token: "ghp_ab1234",
			want:  "[token:****1234]",
		},
		{
			name:  "quoted travis credential masked inside the quotes",
			token: `"travis-access-token"`,
			want:  "[token:****oken]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := security.NewSecureToken(tt.token)
			if got := token.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecureTokenNeverLeaksThroughFormatting(t *testing.T) {
	token := security.NewSecureToken("ghp_verysecretvalue42")

	for _, formatted := range []string{
		fmt.Sprintf("%s", token),
		fmt.Sprintf("%v", token),
		fmt.Sprintf("%+v", token),
		fmt.Sprintf("%#v", token),
	} {
		if formatted != "[token:ghp_****ue42]" {
			t.Errorf("formatted token = %q, leaked value", formatted)
		}
	}
}

func TestSecureTokenValue(t *testing.T) {
	token := security.NewSecureToken("raw-value")
	if token.Value() != "raw-value" {
		t.Errorf("Value() = %q, want raw-value", token.Value())
	}
	if token.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty token")
	}
	if !security.NewSecureToken("").IsEmpty() {
		t.Error("IsEmpty() = false for empty token")
	}
}
