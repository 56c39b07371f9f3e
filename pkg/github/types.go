package github

// User is a GitHub account. Name and Email are only populated on the
// authenticated /user endpoint and feed the committer identity when
// committing files.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Repository is a GitHub repository.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Owner         User   `json:"owner"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
	CloneURL      string `json:"clone_url"`
}

// fileContent is the wire shape of the repository contents endpoint.
type fileContent struct {
	SHA      string `json:"sha"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// reference is the wire shape of a git ref lookup.
type reference struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// committer is the identity recorded on an API-mediated commit.
type committer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// commitFileRequest is the PUT payload for creating or updating a file.
// SHA is set only when updating an existing file.
type commitFileRequest struct {
	Path      string    `json:"path"`
	Message   string    `json:"message"`
	Branch    string    `json:"branch,omitempty"`
	Content   string    `json:"content"`
	Committer committer `json:"committer"`
	SHA       string    `json:"sha,omitempty"`
}

// webhookConfig is the nested config block of a webhook creation payload.
type webhookConfig struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Secret      string `json:"secret"`
	InsecureSSL string `json:"insecure_ssl,omitempty"`
}

// createWebhookRequest is the POST payload for creating a webhook.
type createWebhookRequest struct {
	Name   string        `json:"name"`
	Active bool          `json:"active"`
	Events []string      `json:"events"`
	Config webhookConfig `json:"config"`
}

// mergeResult is the wire shape of a merge response; only the commit SHA
// is of interest.
type mergeResult struct {
	SHA string `json:"sha"`
}
