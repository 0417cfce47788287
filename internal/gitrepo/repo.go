package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// StateDirName is the directory under .git that holds branchkit state
// (isolated config, event log, rendered manual).
const StateDirName = "branchkit"

// ErrNotARepository indicates that no enclosing Git repository was found.
var ErrNotARepository = errors.New("not in a git repository")

// Repo is a handle to the repository branchkit operates on.
type Repo struct {
	root   string // working tree root
	gitDir string // resolved .git directory
	repo   *gogit.Repository
}

// Discover walks upward from startDir until it finds a .git directory or
// gitdir file, then opens the repository with go-git.
func Discover(startDir string) (*Repo, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		gitPath := filepath.Join(dir, ".git")
		info, statErr := os.Stat(gitPath)
		if statErr == nil {
			gitDir, resolveErr := resolveGitDir(dir, gitPath, info.IsDir())
			if resolveErr != nil {
				return nil, resolveErr
			}
			return open(dir, gitDir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotARepository
		}
		dir = parent
	}
}

// resolveGitDir maps a .git path to the actual git directory. Worktrees and
// submodules use a ".git" file containing "gitdir: <path>".
func resolveGitDir(workDir, gitPath string, isDir bool) (string, error) {
	if isDir {
		return gitPath, nil
	}
	content, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("read gitdir file: %w", err)
	}
	line := strings.TrimSpace(string(content))
	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("malformed gitdir file: %s", gitPath)
	}
	target := strings.TrimPrefix(line, prefix)
	if !filepath.IsAbs(target) {
		target = filepath.Join(workDir, target)
	}
	return filepath.Clean(target), nil
}

func open(root, gitDir string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", root, err)
	}
	return &Repo{root: root, gitDir: gitDir, repo: repo}, nil
}

// Root returns the working tree root.
func (r *Repo) Root() string { return r.root }

// GitDir returns the resolved .git directory.
func (r *Repo) GitDir() string { return r.gitDir }

// Underlying exposes the go-git repository for object-level reads.
func (r *Repo) Underlying() *gogit.Repository { return r.repo }

// StateDir returns the branchkit state directory, creating it if needed.
func (r *Repo) StateDir() (string, error) {
	dir := filepath.Join(r.gitDir, StateDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path of the repository's primary config file.
func (r *Repo) ConfigPath() string { return filepath.Join(r.gitDir, "config") }

// IsolatedConfigPath returns the path of branchkit's isolated config file.
func (r *Repo) IsolatedConfigPath() string {
	return filepath.Join(r.gitDir, StateDirName, "config")
}

// HooksDir returns the directory git reads hooks from, honoring a
// core.hooksPath override relative to the working tree root.
func (r *Repo) HooksDir() (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", fmt.Errorf("read repository config: %w", err)
	}
	hooksPath := cfg.Raw.Section("core").Option("hooksPath")
	if hooksPath == "" {
		return filepath.Join(r.gitDir, "hooks"), nil
	}
	if strings.HasPrefix(hooksPath, "~/") {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("expand core.hooksPath: %w", herr)
		}
		return filepath.Join(home, hooksPath[2:]), nil
	}
	if !filepath.IsAbs(hooksPath) {
		return filepath.Join(r.root, hooksPath), nil
	}
	return hooksPath, nil
}

// MultiHooksDir returns the hooks_multi directory and whether it exists.
// Some deployments fan a single hook type out to a <type>.d directory.
func (r *Repo) MultiHooksDir() (string, bool) {
	dir := filepath.Join(r.gitDir, "hooks_multi")
	info, err := os.Stat(dir)
	return dir, err == nil && info.IsDir()
}

// HasLocalBranch reports whether a local branch with the given name exists.
func (r *Repo) HasLocalBranch(name string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

// DefaultBranchName returns the configured init.defaultBranch, if any.
func (r *Repo) DefaultBranchName() string {
	cfg, err := r.repo.Config()
	if err != nil {
		return ""
	}
	return cfg.Raw.Section("init").Option("defaultBranch")
}

// Head returns the current HEAD commit hash, or an error if HEAD is unborn.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// CurrentBranch returns the checked-out branch name, or "" when detached.
func (r *Repo) CurrentBranch() string {
	ref, err := r.repo.Head()
	if err != nil || !ref.Name().IsBranch() {
		return ""
	}
	return ref.Name().Short()
}
