package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"git.home.luguber.info/inful/branchkit/internal/eventlog"
	"git.home.luguber.info/inful/branchkit/internal/gitconfig"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"git.home.luguber.info/inful/branchkit/internal/hooks"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *StatusCmd) Run(_ *Global, _ *CLI) error {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return err
	}

	fmt.Printf("Repository: %s\n", repo.Root())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runner := gitrepo.NewRunner(repo.Root())
	if gitVersion, verr := runner.Version(ctx); verr == nil {
		fmt.Printf("Git version: %s\n", gitVersion)
		if gitVersion.Less(gitrepo.MinReferenceTransaction) {
			fmt.Println("  (older than 2.29: ref updates are not recorded)")
		}
	} else {
		fmt.Println("Git version: unknown")
	}

	iso, err := gitconfig.LoadIsolated(repo.IsolatedConfigPath())
	if err != nil {
		return err
	}

	if mainBranch := iso.Get("branchkit.core.mainBranch"); mainBranch != "" {
		fmt.Printf("Main branch: %s\n", mainBranch)
	} else {
		fmt.Println("Main branch: not configured (run: branchkit init)")
	}

	fmt.Println("Hooks:")
	for _, h := range hooks.All {
		state := "absent"
		if hooks.Installed(repo, h.Type) {
			state = "installed"
		}
		fmt.Printf("  %-22s %s\n", h.Type, state)
	}

	installedAliases := iso.Aliases()
	names := make([]string, 0, len(installedAliases))
	for name := range installedAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("Aliases: %d installed\n", len(names))
	for _, name := range names {
		fmt.Printf("  git %-10s -> %s\n", name, installedAliases[name])
	}

	printEventStats(ctx, repo)
	return nil
}

//nolint:forbidigo // fmt is used for user-facing messages
func printEventStats(ctx context.Context, repo *gitrepo.Repo) {
	dbPath := filepath.Join(repo.GitDir(), gitrepo.StateDirName, eventlog.DBFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Event log: empty")
		return
	}

	store, err := eventlog.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Println("Event log: unreadable")
		return
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(ctx)
	if err != nil {
		fmt.Println("Event log: unreadable")
		return
	}

	fmt.Printf("Event log: %d events", stats.Total)
	if stats.Total > 0 {
		fmt.Printf(" (%s to %s)",
			stats.First.Format("2006-01-02"), stats.Last.Format("2006-01-02"))
	}
	fmt.Println()

	types := make([]string, 0, len(stats.ByType))
	for eventType := range stats.ByType {
		types = append(types, eventType)
	}
	sort.Strings(types)
	for _, eventType := range types {
		fmt.Printf("  %-12s %d\n", eventType, stats.ByType[eventType])
	}
}
