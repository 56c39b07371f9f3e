package setup

import "errors"

var (
	errDeclined        = errors.New("declined by user")
	errHookNotFound    = errors.New("travis hook not found for repository")
	errSettingsRefused = errors.New("travis refused the settings update")
	errRepoNotOnCI     = errors.New("repository not visible to travis")
	errCommitRefused   = errors.New("commit was not acknowledged")

	// ErrDeclined is returned when the user refuses a confirmation.
	ErrDeclined = errDeclined
	// ErrHookNotFound is returned when no Travis hook matches the repository.
	ErrHookNotFound = errHookNotFound
	// ErrSettingsRefused is returned when the settings PATCH is not acknowledged.
	ErrSettingsRefused = errSettingsRefused
	// ErrRepoNotOnCI is returned when Travis does not know the repository yet.
	ErrRepoNotOnCI = errRepoNotOnCI
	// ErrCommitRefused is returned when the CI file commit comes back
	// with an unexpected status.
	ErrCommitRefused = errCommitRefused
)
