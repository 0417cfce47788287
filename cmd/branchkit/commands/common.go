package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/branchkit/internal/config"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:".branchkit.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Set up branchkit in the current repository"`
	Uninstall UninstallCmd `cmd:"" help:"Remove branchkit from the current repository"`
	Status    StatusCmd    `cmd:"" help:"Report installation state"`
	Events    EventsCmd    `cmd:"" help:"List recorded repository events"`
	Docs      DocsCmd      `cmd:"" help:"Render the command manual to HTML"`
	Hook      HookCmd      `cmd:"" hidden:"" help:"Hook plumbing invoked by installed git hooks"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadRepoAndConfig opens the enclosing repository and loads tool
// configuration.
func loadRepoAndConfig(root *CLI) (*gitrepo.Repo, *config.Config, error) {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(resolveConfigPath(root, repo))
	if err != nil {
		return nil, nil, err
	}
	return repo, cfg, nil
}

// resolveConfigPath resolves the config flag: an existing path as given,
// then the repository root, then the state directory when the default
// file name is in play.
func resolveConfigPath(root *CLI, repo *gitrepo.Repo) string {
	cfgPath := root.Config
	if filepath.IsAbs(cfgPath) {
		return cfgPath
	}
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath
	}

	rootPath := filepath.Join(repo.Root(), root.Config)
	if _, err := os.Stat(rootPath); err == nil {
		return rootPath
	}

	if root.Config == config.DefaultFileName {
		statePath := filepath.Join(repo.GitDir(), gitrepo.StateDirName, config.StateFileName)
		if _, err := os.Stat(statePath); err == nil {
			return statePath
		}
	}
	return rootPath
}
