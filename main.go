// Package main provides the entry point for the gitci CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sgaunet/bullets"
	"github.com/spf13/cobra"

	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/internal/ui"
	"github.com/sgaunet/gitci/pkg/config"
	"github.com/sgaunet/gitci/pkg/git"
	"github.com/sgaunet/gitci/pkg/github"
	"github.com/sgaunet/gitci/pkg/setup"
	"github.com/sgaunet/gitci/pkg/travis"
)

var (
	errBadRepoArg    = errors.New("expected repository as owner/repo")
	errBadSecretArg  = errors.New("expected secret as NAME=value")
	errNoGithubToken = errors.New("GITHUB_TOKEN is not set")
)

var (
	logLevel string
	repoFlag string
	yesFlag  bool
	log      *bullets.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gitci",
	Short: "Connects GitHub repositories to Travis CI",
	Long: `gitci wires a GitHub repository into Travis CI: it forks the
repository when needed, installs the push webhook, waits for the Travis
account sync, activates the build hook, applies build settings, and
commits encrypted secrets into .travis.yml.`,
}

var setupCmd = &cobra.Command{
	Use:   "setup [owner/repo]",
	Short: "Onboard a repository onto Travis CI",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.Context(), args)
	},
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt NAME=value...",
	Short: "Encrypt values against a repository's Travis key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncrypt(cmd.Context(), args)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a Travis account sync and wait for it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSync(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info",
		"Set log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", "",
		"Repository as owner/repo (default: inferred from the origin remote)")
	setupCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false,
		"Skip confirmation prompts")
	rootCmd.AddCommand(setupCmd, encryptCmd, syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveRepo turns the --repo flag, a positional argument, or the origin
// remote of the working directory into an (owner, repo) pair.
func resolveRepo(arg string) (string, string, error) {
	repoArg := repoFlag
	if arg != "" {
		repoArg = arg
	}
	if repoArg != "" {
		parts := strings.Split(repoArg, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("%w: %s", errBadRepoArg, repoArg)
		}
		return parts[0], parts[1], nil
	}

	repo, err := git.OpenRepository(".")
	if err != nil {
		return "", "", fmt.Errorf("failed to open git repository: %w", err)
	}
	return repo.OwnerRepo()
}

// detectBranch reports the branch the CI file commit should target when
// running inside a checkout: the checked-out branch, or the remote's main
// branch on a detached HEAD. Empty means the default branch.
func detectBranch() string {
	repo, err := git.OpenRepository(".")
	if err != nil {
		return ""
	}
	branch, err := repo.GetCurrentBranch()
	if err == nil {
		return branch
	}
	branch, err = repo.GetMainBranch()
	if err != nil {
		return ""
	}
	return branch
}

// pickRepository prompts the user to choose among their repositories.
func pickRepository(ctx context.Context, source *github.Client) (string, string, error) {
	repositories, err := source.ListRepositories(ctx)
	if err != nil {
		return "", "", err
	}

	names := make([]string, len(repositories))
	for i, repository := range repositories {
		names[i] = repository.FullName
	}

	selected, err := ui.NewPrompter().SelectRepository(names)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(selected, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %s", errBadRepoArg, selected)
	}
	return parts[0], parts[1], nil
}

// travisClient builds a Travis client, logging in with the GitHub token
// when no Travis credential is present in the environment.
func travisClient(ctx context.Context) (*travis.Client, error) {
	client := travis.NewFromEnv()
	client.SetLogger(log)
	if !client.Authenticated() {
		githubToken := os.Getenv("GITHUB_TOKEN")
		if githubToken == "" {
			return nil, errNoGithubToken
		}
		if err := client.Login(ctx, githubToken); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func runSetup(ctx context.Context, args []string) error {
	log = logger.NewLogger(logLevel)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel == "info" && cfg.LogLevel != "" {
		log = logger.NewLogger(cfg.LogLevel)
	}

	source, err := github.NewFromEnv()
	if err != nil {
		return err
	}
	source.SetLogger(log)

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	owner, repo, err := resolveRepo(arg)
	fromCheckout := err == nil && repoFlag == "" && arg == ""
	if err != nil {
		// Outside a checkout with no --repo: let the user pick one of
		// their own repositories instead.
		owner, repo, err = pickRepository(ctx, source)
		if err != nil {
			return err
		}
	}
	log.Info("Setting up " + owner + "/" + repo)

	ci := travis.NewFromEnv()
	ci.SetLogger(log)

	flow := setup.NewFlow(source, ci, cfg, os.Getenv("GITHUB_TOKEN"))
	flow.SetLogger(log)
	if !yesFlag {
		flow.SetConfirmer(ui.NewPrompter())
	}
	if fromCheckout {
		// Commit the CI file to the branch the checkout is on, not the
		// repository's default branch.
		flow.SetBranch(detectBranch())
	}

	result, err := flow.Run(ctx, owner, repo)
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("%s/%s is on CI (forked: %v, webhook: %v, secrets: %d)",
		result.Owner, result.Repository, result.ForkCreated, result.WebhookCreated, result.SecretsAdded))
	return nil
}

func runEncrypt(ctx context.Context, args []string) error {
	log = logger.NewLogger(logLevel)

	owner, repo, err := resolveRepo("")
	if err != nil {
		return err
	}
	slug := owner + "/" + repo

	client, err := travisClient(ctx)
	if err != nil {
		return err
	}

	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			return fmt.Errorf("%w: %s", errBadSecretArg, arg)
		}
		sealed, err := client.Encrypt(ctx, slug, arg)
		if err != nil {
			return err
		}
		fmt.Printf("secure: %s\n", sealed)
	}
	return nil
}

func runSync(ctx context.Context) error {
	log = logger.NewLogger(logLevel)

	client, err := travisClient(ctx)
	if err != nil {
		return err
	}

	if err := client.Sync(ctx, true, travis.PollConfig{}); err != nil {
		return err
	}
	log.Info("Travis account is in sync")
	return nil
}
