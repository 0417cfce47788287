package hooks

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"git.home.luguber.info/inful/branchkit/internal/logfields"
)

const (
	shebang     = "#!/bin/sh"
	markerStart = "## START BRANCHKIT CONFIG"
	markerEnd   = "## END BRANCHKIT CONFIG"
)

// Hook is one installable hook: the git hook type and the shell stub spliced
// into the hook file.
type Hook struct {
	Type   string
	Script string
}

// All lists every hook branchkit installs. The reference-transaction stub
// must never cancel the transaction, so failures are reported and swallowed
// at the shell level.
var All = []Hook{
	{"post-commit", "\nbranchkit hook post-commit \"$@\"\n"},
	{"post-merge", "\nbranchkit hook post-merge \"$@\"\n"},
	{"post-rewrite", "\nbranchkit hook post-rewrite \"$@\"\n"},
	{"post-checkout", "\nbranchkit hook post-checkout \"$@\"\n"},
	{"pre-auto-gc", "\nbranchkit hook pre-auto-gc \"$@\"\n"},
	{"reference-transaction", `
branchkit hook reference-transaction "$@" || (
echo 'branchkit: failed to process reference transaction'
echo 'branchkit: some ref updates may not have been recorded'
)
`},
}

// uninstalledStub replaces the marker region contents on uninstall.
const uninstalledStub = `
# This hook has been uninstalled.
# Run 'branchkit init' to reinstall.
`

// Location is where a hook file lives for a repository, accounting for the
// multi-hook layout (hooks_multi/<type>.d/00_local_branchkit).
type Location struct {
	Path  string
	Multi bool
}

// Locate determines the hook file path for a hook type.
func Locate(repo *gitrepo.Repo, hookType string) (Location, error) {
	if multiDir, ok := repo.MultiHooksDir(); ok {
		return Location{
			Path:  filepath.Join(multiDir, hookType+".d", "00_local_branchkit"),
			Multi: true,
		}, nil
	}
	hooksDir, err := repo.HooksDir()
	if err != nil {
		return Location{}, err
	}
	return Location{Path: filepath.Join(hooksDir, hookType)}, nil
}

// SpliceMarkers replaces the marker-delimited region in lines with script,
// appending a fresh region when no markers are present. An unterminated
// region is repaired by dropping everything after the start marker.
func SpliceMarkers(lines, script string) string {
	var out strings.Builder
	foundMarker := false
	ignoring := false

	if lines != "" {
		for _, line := range strings.Split(strings.TrimSuffix(lines, "\n"), "\n") {
			switch {
			case line == markerStart:
				foundMarker = true
				ignoring = true
				appendRegion(&out, script)
			case line == markerEnd:
				ignoring = false
			case !ignoring:
				out.WriteString(line)
				out.WriteByte('\n')
			}
		}
	}

	if ignoring {
		slog.Warn("Unterminated branchkit marker region in hook file")
	} else if !foundMarker {
		appendRegion(&out, script)
	}
	return out.String()
}

func appendRegion(out *strings.Builder, script string) {
	out.WriteString(markerStart)
	out.WriteByte('\n')
	out.WriteString(script)
	out.WriteString(markerEnd)
	out.WriteByte('\n')
}

// Install writes one hook stub into its hook file.
func Install(repo *gitrepo.Repo, h Hook) error {
	loc, err := Locate(repo, h.Type)
	if err != nil {
		return err
	}
	return write(loc, h.Script)
}

// InstallAll installs every hook whose type is not in skip.
func InstallAll(repo *gitrepo.Repo, skip map[string]bool) error {
	for _, h := range All {
		if skip[h.Type] {
			slog.Debug("Skipping hook", logfields.Hook(h.Type))
			continue
		}
		slog.Info("Installing hook", logfields.Hook(h.Type))
		if err := Install(repo, h); err != nil {
			return fmt.Errorf("install hook %s: %w", h.Type, err)
		}
	}
	return nil
}

// UninstallAll rewrites every hook's marker region to the inert stub.
func UninstallAll(repo *gitrepo.Repo) error {
	for _, h := range All {
		slog.Info("Uninstalling hook", logfields.Hook(h.Type))
		loc, err := Locate(repo, h.Type)
		if err != nil {
			return err
		}
		if _, serr := os.Stat(loc.Path); os.IsNotExist(serr) {
			continue
		}
		if err := write(loc, uninstalledStub); err != nil {
			return fmt.Errorf("uninstall hook %s: %w", h.Type, err)
		}
	}
	return nil
}

// Installed reports whether the hook file contains an active branchkit stub.
func Installed(repo *gitrepo.Repo, hookType string) bool {
	loc, err := Locate(repo, hookType)
	if err != nil {
		return false
	}
	content, err := os.ReadFile(loc.Path)
	if err != nil {
		return false
	}
	s := string(content)
	return strings.Contains(s, markerStart) && strings.Contains(s, "branchkit hook")
}

func write(loc Location, script string) error {
	var content string
	if loc.Multi {
		// Multi-hook files are wholly owned by branchkit.
		content = shebang + "\n" + script
	} else {
		existing, err := os.ReadFile(loc.Path)
		switch {
		case err == nil:
			content = SpliceMarkers(string(existing), script)
		case os.IsNotExist(err):
			content = shebang + "\n" + markerStart + "\n" + script + markerEnd + "\n"
		default:
			return fmt.Errorf("read hook file: %w", err)
		}
	}
	return writeScript(loc.Path, content)
}

// writeScript writes the hook file and marks it executable.
func writeScript(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create hook directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}
	// os.WriteFile applies the mode only on creation; splice updates need
	// the execute bits restored explicitly.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat hook file: %w", err)
	}
	if err := os.Chmod(path, info.Mode()|0o111); err != nil {
		return fmt.Errorf("mark hook executable: %w", err)
	}
	return nil
}
