package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner invokes the installed git binary for operations where the binary is
// authoritative (version detection, plumbing not covered by go-git).
type Runner struct {
	// GitPath is the git executable; defaults to "git" (PATH lookup).
	GitPath string
	// Dir is the working directory for invocations.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// NewRunner creates a Runner rooted at the given working directory.
func NewRunner(dir string) *Runner {
	return &Runner{GitPath: "git", Dir: dir}
}

// CommandError carries the failing git invocation and its captured stderr.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Run executes git with the given arguments and returns trimmed stdout.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	gitPath := r.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Version detects the installed git version.
func (r *Runner) Version(ctx context.Context) (Version, error) {
	out, err := r.Run(ctx, "version")
	if err != nil {
		return Version{}, err
	}
	v, err := ParseVersion(out)
	if err != nil {
		return Version{}, fmt.Errorf("parse git version %q: %w", out, err)
	}
	return v, nil
}
