package travis

// The v2 API wraps every resource in a single-key envelope; the response
// types below mirror that shape so futures decode directly into them.

// Repository is a Travis-side repository record.
type Repository struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Active      bool   `json:"active"`
	Description string `json:"description"`
	LastBuildID int64  `json:"last_build_id"`
}

// RepositoryResponse is the envelope of GET /repos/{owner}/{repo}.
type RepositoryResponse struct {
	Repo Repository `json:"repo"`
}

// Build is a single CI build.
type Build struct {
	ID           int64   `json:"id"`
	RepositoryID int64   `json:"repository_id"`
	Number       string  `json:"number"`
	State        string  `json:"state"`
	Duration     int64   `json:"duration"`
	JobIDs       []int64 `json:"job_ids"`
}

// BuildResponse is the envelope of GET /builds/{id}.
type BuildResponse struct {
	Build Build `json:"build"`
}

// Job is a single build job.
type Job struct {
	ID           int64  `json:"id"`
	BuildID      int64  `json:"build_id"`
	RepositoryID int64  `json:"repository_id"`
	Number       string `json:"number"`
	State        string `json:"state"`
}

// JobResponse is the envelope of GET /jobs/{id}.
type JobResponse struct {
	Job Job `json:"job"`
}

// Hook is a repository hook as Travis reports it.
type Hook struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"owner_name"`
	Active    bool   `json:"active"`
	Admin     bool   `json:"admin"`
}

// HooksResponse is the envelope of GET /hooks.
type HooksResponse struct {
	Hooks []Hook `json:"hooks"`
}

// syncUser is the slice of the /users/ payload the sync poller reads.
type syncUser struct {
	IsSyncing bool   `json:"is_syncing"`
	SyncedAt  string `json:"synced_at"`
}

// userResponse is the envelope of GET /users/.
type userResponse struct {
	User syncUser `json:"user"`
}

// keyResponse is the envelope of GET /repos/{owner}/{repo}/key.
type keyResponse struct {
	Key string `json:"key"`
}

// Settings are the tunable per-repository CI switches. Nil fields are
// left untouched by UpdateSettings.
type Settings struct {
	BuildPushes             *bool `json:"build_pushes,omitempty" yaml:"build_pushes"`
	BuildPullRequests       *bool `json:"build_pull_requests,omitempty" yaml:"build_pull_requests"`
	BuildsOnlyWithTravisYml *bool `json:"builds_only_with_travis_yml,omitempty" yaml:"builds_only_with_travis_yml"`
	MaximumNumberOfBuilds   *int  `json:"maximum_number_of_builds,omitempty" yaml:"maximum_number_of_builds"`
}

// Bool returns a pointer to v, for populating optional Settings fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for populating optional Settings fields.
func Int(v int) *int { return &v }
