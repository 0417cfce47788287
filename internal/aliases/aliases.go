// Package aliases installs the git aliases for the branchless workflow
// commands into branchkit's isolated configuration.
package aliases

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/branchkit/internal/gitconfig"
	"git.home.luguber.info/inful/branchkit/internal/logfields"
)

// Default maps alias names to branchkit subcommands. The shell form ("!")
// is required because branchkit is a standalone binary, not a git
// subcommand.
var Default = map[string]string{
	"amend":    "amend",
	"co":       "checkout",
	"hide":     "hide",
	"move":     "move",
	"next":     "next",
	"prev":     "prev",
	"restack":  "restack",
	"sl":       "smartlog",
	"smartlog": "smartlog",
	"undo":     "undo",
	"unhide":   "unhide",
}

// Install writes the default aliases plus extras into the isolated config,
// skipping names in disable. Extras win over defaults on name collisions.
func Install(iso *gitconfig.Isolated, extra map[string]string, disable []string) error {
	skip := make(map[string]bool, len(disable))
	for _, name := range disable {
		skip[name] = true
	}

	merged := make(map[string]string, len(Default)+len(extra))
	for from, to := range Default {
		merged[from] = to
	}
	for from, to := range extra {
		merged[from] = to
	}

	for from, to := range merged {
		if skip[from] {
			slog.Debug("Skipping alias", logfields.Alias(from))
			continue
		}
		if err := iso.Set("alias."+from, Target(to)); err != nil {
			return fmt.Errorf("set alias %s: %w", from, err)
		}
	}
	return nil
}

// Target renders the alias value for a branchkit subcommand.
func Target(subcommand string) string {
	return "!branchkit " + subcommand
}
