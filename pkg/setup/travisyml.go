package setup

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaultTravisYml seeds repositories that have no CI file yet.
var defaultTravisYml = map[string]any{
	"language": "generic",
}

// addSecureEnv merges encrypted values into a .travis.yml document,
// appending `{secure: <ciphertext>}` entries under env.global. existing
// may be nil or empty, in which case a minimal document is created. The
// document's other keys pass through untouched.
func addSecureEnv(existing []byte, ciphertexts []string) ([]byte, error) {
	doc := map[string]any{}
	if len(existing) > 0 {
		if err := yaml.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("parsing .travis.yml: %w", err)
		}
	}
	if len(doc) == 0 {
		for key, value := range defaultTravisYml {
			doc[key] = value
		}
	}

	env, ok := doc["env"].(map[string]any)
	if !ok {
		env = map[string]any{}
	}
	global, ok := env["global"].([]any)
	if !ok {
		global = nil
	}

	for _, ciphertext := range ciphertexts {
		global = append(global, map[string]any{"secure": ciphertext})
	}

	env["global"] = global
	doc["env"] = env

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering .travis.yml: %w", err)
	}
	return out, nil
}
