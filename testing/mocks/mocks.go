package mocks

import "github.com/sgaunet/gitci/pkg/setup"

// Compile-time interface checks.
var (
	_ setup.SourceControl = (*GitHubClient)(nil)
	_ setup.CI            = (*TravisClient)(nil)
	_ setup.Confirmer     = (*Confirmer)(nil)
)
