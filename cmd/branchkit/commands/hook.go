package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/branchkit/internal/eventlog"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"git.home.luguber.info/inful/branchkit/internal/logfields"
	"github.com/google/uuid"
)

// HookCmd groups the plumbing subcommands invoked by the installed git
// hooks. Users do not run these directly.
type HookCmd struct {
	PostCommit           PostCommitCmd           `cmd:"" name:"post-commit" help:"Record the commit just created"`
	PostMerge            PostMergeCmd            `cmd:"" name:"post-merge" help:"Record a merge result"`
	PostCheckout         PostCheckoutCmd         `cmd:"" name:"post-checkout" help:"Record a HEAD move"`
	PostRewrite          PostRewriteCmd          `cmd:"" name:"post-rewrite" help:"Record amend/rebase commit mappings"`
	PreAutoGC            PreAutoGCCmd            `cmd:"" name:"pre-auto-gc" help:"Record an upcoming automatic gc"`
	ReferenceTransaction ReferenceTransactionCmd `cmd:"" name:"reference-transaction" help:"Record ref updates"`
}

// hookSession bundles what every hook subcommand needs: the repository, an
// open event store, and a fresh transaction ID.
type hookSession struct {
	repo  *gitrepo.Repo
	store eventlog.Store
	txnID string
}

func openHookSession() (*hookSession, error) {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return nil, err
	}
	stateDir, err := repo.StateDir()
	if err != nil {
		return nil, err
	}
	store, err := eventlog.NewSQLiteStore(filepath.Join(stateDir, eventlog.DBFileName))
	if err != nil {
		return nil, err
	}
	return &hookSession{repo: repo, store: store, txnID: uuid.NewString()}, nil
}

func (s *hookSession) close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("Failed to close event store", logfields.Error(err))
	}
}

func hookContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// PostCommitCmd records the commit just created.
type PostCommitCmd struct{}

func (cmd *PostCommitCmd) Run(_ *Global, _ *CLI) error {
	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	head, err := s.repo.Head()
	if err != nil {
		return err
	}

	ctx, cancel := hookContext()
	defer cancel()
	return s.store.Append(ctx, s.txnID, eventlog.TypeCommit, eventlog.CommitPayload{
		Commit: head,
		Branch: s.repo.CurrentBranch(),
	}, nil)
}

// PostMergeCmd records a merge result. Git passes a squash flag argument.
type PostMergeCmd struct {
	Squash int `arg:"" optional:"" help:"1 when the merge was a squash merge"`
}

func (cmd *PostMergeCmd) Run(_ *Global, _ *CLI) error {
	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	head, err := s.repo.Head()
	if err != nil {
		return err
	}

	ctx, cancel := hookContext()
	defer cancel()
	return s.store.Append(ctx, s.txnID, eventlog.TypeMerge, eventlog.MergePayload{
		Commit: head,
		Squash: cmd.Squash == 1,
	}, nil)
}

// PostCheckoutCmd records a HEAD move. Git passes the previous HEAD, the
// new HEAD, and a flag that is 1 for branch checkouts.
type PostCheckoutCmd struct {
	OldHead string `arg:"" help:"Previous HEAD commit"`
	NewHead string `arg:"" help:"New HEAD commit"`
	Branch  int    `arg:"" help:"1 for a branch checkout, 0 for a file checkout"`
}

func (cmd *PostCheckoutCmd) Run(_ *Global, _ *CLI) error {
	// File checkouts do not move HEAD; nothing to record.
	if cmd.Branch != 1 {
		return nil
	}

	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := hookContext()
	defer cancel()
	return s.store.Append(ctx, s.txnID, eventlog.TypeCheckout, eventlog.CheckoutPayload{
		OldCommit: cmd.OldHead,
		NewCommit: cmd.NewHead,
		IsBranch:  true,
	}, nil)
}

// PostRewriteCmd records amend/rebase commit mappings. Git passes the
// rewrite kind as an argument and "old new [extra]" lines on stdin.
type PostRewriteCmd struct {
	Kind string `arg:"" enum:"amend,rebase" help:"Rewrite kind"`

	stdin io.Reader
}

func (cmd *PostRewriteCmd) Run(_ *Global, _ *CLI) error {
	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	in := cmd.stdin
	if in == nil {
		in = os.Stdin
	}

	ctx, cancel := hookContext()
	defer cancel()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		payload := eventlog.RewritePayload{
			Kind:      cmd.Kind,
			OldCommit: fields[0],
			NewCommit: fields[1],
		}
		if err := s.store.Append(ctx, s.txnID, eventlog.TypeRewrite, payload, nil); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read rewrite mappings: %w", err)
	}
	return nil
}

// PreAutoGCCmd records an upcoming automatic garbage collection.
type PreAutoGCCmd struct{}

func (cmd *PreAutoGCCmd) Run(_ *Global, _ *CLI) error {
	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := hookContext()
	defer cancel()
	return s.store.Append(ctx, s.txnID, eventlog.TypeGC, struct{}{}, nil)
}

// ReferenceTransactionCmd records ref updates. Git passes the transaction
// state as an argument and "old new refname" lines on stdin.
//
// This command must never fail: a non-zero exit from the prepared stage
// cancels the ref transaction. Errors are logged and swallowed.
type ReferenceTransactionCmd struct {
	State string `arg:"" enum:"prepared,committed,aborted" help:"Transaction state"`

	stdin io.Reader
}

func (cmd *ReferenceTransactionCmd) Run(_ *Global, _ *CLI) error {
	// Only the committed stage carries updates worth recording.
	if cmd.State != "committed" {
		return nil
	}

	if err := cmd.record(); err != nil {
		slog.Error("Failed to record reference transaction", logfields.Error(err))
	}
	return nil
}

func (cmd *ReferenceTransactionCmd) record() error {
	s, err := openHookSession()
	if err != nil {
		return err
	}
	defer s.close()

	in := cmd.stdin
	if in == nil {
		in = os.Stdin
	}

	ctx, cancel := hookContext()
	defer cancel()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		payload := eventlog.RefUpdatePayload{
			State:   cmd.State,
			OldHash: fields[0],
			NewHash: fields[1],
			Ref:     fields[2],
		}
		if err := s.store.Append(ctx, s.txnID, eventlog.TypeRefUpdate, payload, nil); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ref updates: %w", err)
	}
	return nil
}
