// Package setup orchestrates onboarding a GitHub repository onto Travis
// CI: fork, webhook, account sync, hook activation, build settings,
// encrypted secrets, and the CI file itself.
package setup

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/sgaunet/bullets"

	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/pkg/config"
	"github.com/sgaunet/gitci/pkg/endpoint"
	"github.com/sgaunet/gitci/pkg/github"
	"github.com/sgaunet/gitci/pkg/travis"
)

const travisYmlPath = ".travis.yml"

// Flow runs the onboarding steps against a source-control and a CI
// client. Construct it with NewFlow; all steps are driven by Run.
type Flow struct {
	source      SourceControl
	ci          CI
	cfg         *config.Config
	log         *bullets.Logger
	prompt      Confirmer
	githubToken string
	branch      string
	poll        travis.PollConfig
}

// Result reports which steps of the flow actually changed anything.
type Result struct {
	Owner           string
	Repository      string
	ForkCreated     bool
	WebhookCreated  bool
	HookEnabled     bool
	SettingsApplied bool
	SecretsAdded    int
	CIFileCommitted bool
}

// NewFlow creates a Flow. githubToken is handed to the CI client when it
// still needs to exchange it for its own credential.
func NewFlow(source SourceControl, ci CI, cfg *config.Config, githubToken string) *Flow {
	return &Flow{
		source:      source,
		ci:          ci,
		cfg:         cfg,
		log:         logger.NoLogger(),
		githubToken: githubToken,
	}
}

// SetLogger sets the logger for the flow.
func (f *Flow) SetLogger(log *bullets.Logger) {
	f.log = log
}

// SetConfirmer installs an interactive gate before the mutating steps.
func (f *Flow) SetConfirmer(prompt Confirmer) {
	f.prompt = prompt
}

// SetBranch directs the CI file commit at branch. Empty means the
// repository's default branch.
func (f *Flow) SetBranch(branch string) {
	f.branch = branch
}

// SetPollConfig overrides the sync wait budget.
func (f *Flow) SetPollConfig(poll travis.PollConfig) {
	f.poll = poll
}

// Run onboards owner/repo. The fork (or the repository itself when it
// already belongs to the user or configured organisation) is what gets
// the webhook, the hook activation, the settings, and the secrets.
func (f *Flow) Run(ctx context.Context, owner, repo string) (*Result, error) {
	result := &Result{Repository: repo}

	forkOwner, created, err := f.ensureFork(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	result.Owner = forkOwner
	result.ForkCreated = created

	created, err = f.ensureWebhook(ctx, forkOwner, repo)
	if err != nil {
		return nil, err
	}
	result.WebhookCreated = created

	if err := f.ensureCIAccount(ctx); err != nil {
		return nil, err
	}

	enabled, err := f.enableHook(ctx, forkOwner, repo)
	if err != nil {
		return nil, err
	}
	result.HookEnabled = enabled

	applied, err := f.applySettings(ctx, forkOwner, repo)
	if err != nil {
		return nil, err
	}
	result.SettingsApplied = applied

	added, committed, err := f.installSecrets(ctx, forkOwner, repo)
	if err != nil {
		return nil, err
	}
	result.SecretsAdded = added
	result.CIFileCommitted = committed

	f.log.Info("Setup complete for " + forkOwner + "/" + repo)
	return result, nil
}

// confirm gates a step on the installed Confirmer, if any.
func (f *Flow) confirm(message string) error {
	if f.prompt == nil {
		return nil
	}
	confirmed, err := f.prompt.Confirm(message)
	if err != nil {
		return fmt.Errorf("prompting: %w", err)
	}
	if !confirmed {
		return fmt.Errorf("%w: %s", errDeclined, message)
	}
	return nil
}

// ensureFork returns the owner under which CI will run. Repositories the
// user (or configured organisation) already holds are used as-is;
// anything else is forked after confirmation.
func (f *Flow) ensureFork(ctx context.Context, owner, repo string) (string, bool, error) {
	user, err := f.source.CurrentUser(ctx)
	if err != nil {
		return "", false, fmt.Errorf("identifying user: %w", err)
	}

	forkOwner := user.Login
	if f.cfg.Organisation != "" {
		forkOwner = f.cfg.Organisation
	}
	if forkOwner == owner {
		return owner, false, nil
	}

	if _, err := f.source.GetRepository(ctx, forkOwner, repo); err == nil {
		f.log.Info("Fork already exists: " + forkOwner + "/" + repo)
		return forkOwner, false, nil
	} else if endpoint.StatusOf(err) != http.StatusNotFound {
		return "", false, fmt.Errorf("checking for fork: %w", err)
	}

	if err := f.confirm(fmt.Sprintf("Fork %s/%s into %s?", owner, repo, forkOwner)); err != nil {
		return "", false, err
	}

	fork, err := f.source.Fork(ctx, owner, repo, f.cfg.Organisation, true)
	if err != nil {
		return "", false, fmt.Errorf("forking %s/%s: %w", owner, repo, err)
	}
	f.log.Info("Forked " + fork.FullName)
	return forkOwner, true, nil
}

// ensureWebhook installs the configured push webhook. A 422 from the
// hooks API means an identical hook already exists and is not an error.
func (f *Flow) ensureWebhook(ctx context.Context, owner, repo string) (bool, error) {
	if err := f.confirm(fmt.Sprintf("Install webhook %s on %s/%s?", f.cfg.Webhook.URL, owner, repo)); err != nil {
		return false, err
	}

	err := f.source.CreateWebhook(ctx, owner, repo, f.cfg.Webhook.URL, f.cfg.Webhook.Secret, github.WebhookOptions{
		VerifySSL: f.cfg.Webhook.VerifySSL,
	})
	if err != nil {
		if endpoint.StatusOf(err) == http.StatusUnprocessableEntity {
			f.log.Info("Webhook already installed on " + owner + "/" + repo)
			return false, nil
		}
		return false, fmt.Errorf("installing webhook: %w", err)
	}
	return true, nil
}

// ensureCIAccount logs into Travis when needed and waits for the account
// to pick up the repository.
func (f *Flow) ensureCIAccount(ctx context.Context) error {
	if !f.ci.Authenticated() {
		if err := f.ci.Login(ctx, f.githubToken); err != nil {
			return fmt.Errorf("logging into CI: %w", err)
		}
	}
	if err := f.ci.Sync(ctx, true, f.poll); err != nil {
		return fmt.Errorf("syncing CI account: %w", err)
	}
	return nil
}

// enableHook finds the repository's Travis hook and switches it on.
func (f *Flow) enableHook(ctx context.Context, owner, repo string) (bool, error) {
	future, err := f.ci.GetHooks(ctx)
	if err != nil {
		return false, fmt.Errorf("listing hooks: %w", err)
	}

	hooks, ok := future.Resolve()
	if !ok {
		return false, fmt.Errorf("listing hooks: %w", errHookNotFound)
	}

	for _, hook := range hooks.Hooks {
		if hook.OwnerName != owner || hook.Name != repo {
			continue
		}
		if hook.Active {
			f.log.Info("Hook already active for " + owner + "/" + repo)
			return false, nil
		}
		if err := f.ci.EnableHook(ctx, hook.ID); err != nil {
			return false, fmt.Errorf("enabling hook: %w", err)
		}
		f.log.Info(fmt.Sprintf("Hook %d enabled for %s/%s", hook.ID, owner, repo))
		return true, nil
	}

	return false, fmt.Errorf("%w: %s/%s", errHookNotFound, owner, repo)
}

// applySettings pushes the configured build settings, when any are set.
func (f *Flow) applySettings(ctx context.Context, owner, repo string) (bool, error) {
	if f.cfg.Travis == (travis.Settings{}) {
		return false, nil
	}

	wrapped, ok := f.ci.GetRepository(ctx, owner, repo).Resolve()
	if !ok || wrapped.Repo.ID == 0 {
		return false, fmt.Errorf("%w: %s/%s", errRepoNotOnCI, owner, repo)
	}

	applied, err := f.ci.UpdateSettings(ctx, wrapped.Repo.ID, f.cfg.Travis)
	if err != nil {
		return false, fmt.Errorf("updating settings: %w", err)
	}
	if !applied {
		return false, fmt.Errorf("%w: %s/%s", errSettingsRefused, owner, repo)
	}
	return true, nil
}

// installSecrets encrypts the configured secrets against the repository
// key and commits them into .travis.yml on the default branch.
func (f *Flow) installSecrets(ctx context.Context, owner, repo string) (int, bool, error) {
	if len(f.cfg.Secrets) == 0 {
		return 0, false, nil
	}

	slug := owner + "/" + repo

	// Stable order keeps the committed file reproducible.
	names := make([]string, 0, len(f.cfg.Secrets))
	for name := range f.cfg.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)

	ciphertexts := make([]string, 0, len(names))
	for _, name := range names {
		sealed, err := f.ci.Encrypt(ctx, slug, name+"="+f.cfg.Secrets[name])
		if err != nil {
			return 0, false, fmt.Errorf("encrypting %s: %w", name, err)
		}
		ciphertexts = append(ciphertexts, sealed)
	}

	existing, err := f.source.GetFile(ctx, owner, repo, travisYmlPath)
	if err != nil {
		if endpoint.StatusOf(err) != http.StatusNotFound {
			return 0, false, fmt.Errorf("reading %s: %w", travisYmlPath, err)
		}
		existing = nil
	}

	content, err := addSecureEnv(existing, ciphertexts)
	if err != nil {
		return 0, false, err
	}

	if err := f.confirm(fmt.Sprintf("Commit %s with %d encrypted secret(s) to %s?", travisYmlPath, len(names), slug)); err != nil {
		return 0, false, err
	}

	committed, err := f.source.CommitFile(ctx, owner, repo, travisYmlPath, content, "Configure CI secrets", f.branch)
	if err != nil {
		return 0, false, fmt.Errorf("committing %s: %w", travisYmlPath, err)
	}
	if !committed {
		return 0, false, fmt.Errorf("%w: %s in %s", errCommitRefused, travisYmlPath, slug)
	}
	f.log.Info(fmt.Sprintf("Committed %s to %s", travisYmlPath, slug))
	return len(names), true, nil
}
