package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/branchkit/internal/eventlog"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
)

// EventsCmd implements the 'events' command.
type EventsCmd struct {
	Since time.Duration `help:"Only show events newer than this" default:"168h"`
	Limit int           `help:"Maximum number of events to show" default:"50"`
}

//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *EventsCmd) Run(_ *Global, _ *CLI) error {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return err
	}
	stateDir, err := repo.StateDir()
	if err != nil {
		return err
	}

	store, err := eventlog.NewSQLiteStore(filepath.Join(stateDir, eventlog.DBFileName))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	events, err := store.GetRange(ctx, now.Add(-cmd.Since), now)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events recorded in the selected range.")
		return nil
	}

	// Newest last in storage order; show the most recent Limit entries.
	if cmd.Limit > 0 && len(events) > cmd.Limit {
		events = events[len(events)-cmd.Limit:]
	}

	for _, e := range events {
		fmt.Printf("%s  %-12s txn=%.8s  %s\n",
			e.Timestamp.Format(time.RFC3339), e.Type, e.TxnID, string(e.Payload))
	}
	return nil
}
