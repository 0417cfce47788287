package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/branchkit/internal/aliases"
	"git.home.luguber.info/inful/branchkit/internal/config"
	"git.home.luguber.info/inful/branchkit/internal/eventlog"
	"git.home.luguber.info/inful/branchkit/internal/gitconfig"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"git.home.luguber.info/inful/branchkit/internal/hooks"
	"git.home.luguber.info/inful/branchkit/internal/logfields"
	"git.home.luguber.info/inful/branchkit/internal/manual"
	"github.com/google/uuid"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	MainBranch  string `name:"main-branch" help:"Main branch name (skips detection)"`
	Force       bool   `help:"Reinstall even if already set up"`
	WriteConfig bool   `name:"write-config" help:"Write an example configuration file before installing"`

	gitPath string
}

//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *InitCmd) Run(_ *Global, root *CLI) error {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return err
	}

	if cmd.WriteConfig {
		cfgPath := filepath.Join(repo.Root(), config.DefaultFileName)
		if err := config.Init(cfgPath, cmd.Force); err != nil {
			return err
		}
		fmt.Printf("Wrote example configuration to %s\n", cfgPath)
	}

	cfg, err := config.Load(resolveConfigPath(root, repo))
	if err != nil {
		return err
	}

	if _, serr := os.Stat(repo.IsolatedConfigPath()); serr == nil && !cmd.Force {
		return fmt.Errorf("branchkit is already installed in this repository (use --force to reinstall)")
	}

	stateDir, err := repo.StateDir()
	if err != nil {
		return err
	}

	// Isolated config first: everything else writes into it.
	iso, err := gitconfig.LoadIsolated(repo.IsolatedConfigPath())
	if err != nil {
		return err
	}
	if err := gitconfig.InstallInclude(repo); err != nil {
		return err
	}
	fmt.Printf("Created config file at %s\n", iso.Path())

	mainBranch, err := resolveMainBranch(cmd.MainBranch, cfg, repo)
	if err != nil {
		return err
	}
	if err := iso.Set("branchkit.core.mainBranch", mainBranch); err != nil {
		return err
	}
	if err := iso.Set("advice.detachedHead", "false"); err != nil {
		return err
	}
	if err := iso.Set("log.excludeDecoration", "refs/branchkit/*"); err != nil {
		return err
	}

	runner := gitrepo.NewRunner(repo.Root())
	if cmd.gitPath != "" {
		runner.GitPath = cmd.gitPath
	}
	skipHooks := hookSkipSet(cfg, runner)
	if err := hooks.InstallAll(repo, skipHooks); err != nil {
		return err
	}

	if err := aliases.Install(iso, cfg.Aliases.Extra, cfg.Aliases.Disable); err != nil {
		return err
	}

	if err := iso.Save(); err != nil {
		return err
	}

	manualDir := filepath.Join(stateDir, "manual")
	if _, err := manual.RenderAll(manualDir); err != nil {
		slog.Warn("Failed to render manual", logfields.Error(err))
	}

	if err := recordInit(stateDir, cfg, mainBranch); err != nil {
		slog.Warn("Failed to record init event", logfields.Error(err))
	}

	fmt.Println("Successfully installed branchkit.")
	fmt.Println("To uninstall, run: branchkit uninstall")
	return nil
}

// resolveMainBranch applies the flag > config > detection precedence.
func resolveMainBranch(flag string, cfg *config.Config, repo *gitrepo.Repo) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.MainBranch != "" {
		return cfg.MainBranch, nil
	}
	if name := repo.DetectMainBranch(); name != "" {
		fmt.Printf("Auto-detected your main branch as: %s\n", name)
		fmt.Println("If this is incorrect, run: git config branchkit.core.mainBranch <branch>")
		return name, nil
	}
	return "", fmt.Errorf("could not detect the main branch; pass --main-branch (examples: master, main, trunk)")
}

// hookSkipSet merges config-disabled hooks with version-gated ones. The
// reference-transaction hook needs git 2.29; on older versions it is
// skipped with a warning rather than installed broken.
func hookSkipSet(cfg *config.Config, runner *gitrepo.Runner) map[string]bool {
	skip := map[string]bool{}
	for _, hookType := range cfg.Hooks.Disable {
		skip[hookType] = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gitVersion, err := runner.Version(ctx)
	if err != nil {
		slog.Warn("Could not determine git version; installing all hooks", logfields.Error(err))
		return skip
	}
	if gitVersion.Less(gitrepo.MinReferenceTransaction) {
		slog.Warn("git version is older than 2.29; ref updates will not be recorded",
			slog.String("git_version", gitVersion.String()))
		skip["reference-transaction"] = true
	}
	return skip
}

// recordInit opens the event log (creating the database on first install)
// and records the installation, pruning old events per retention config.
func recordInit(stateDir string, cfg *config.Config, mainBranch string) error {
	store, err := eventlog.NewSQLiteStore(filepath.Join(stateDir, eventlog.DBFileName))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.EventLog.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cfg.EventLog.RetentionDays)
		if pruned, perr := store.Prune(ctx, cutoff); perr != nil {
			slog.Warn("Failed to prune event log", logfields.Error(perr))
		} else if pruned > 0 {
			slog.Info("Pruned old events", slog.Int64("count", pruned))
		}
	}

	return store.Append(ctx, uuid.NewString(), eventlog.TypeInit,
		map[string]string{"main_branch": mainBranch}, nil)
}
