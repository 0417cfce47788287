package eventlog

import "time"

// Event type names as stored in the events table.
const (
	TypeCommit    = "commit"
	TypeMerge     = "merge"
	TypeCheckout  = "checkout"
	TypeRewrite   = "rewrite"
	TypeRefUpdate = "ref-update"
	TypeGC        = "gc"
	TypeInit      = "init"
)

// Event is one recorded repository event.
type Event struct {
	ID        int64
	TxnID     string
	Type      string
	Timestamp time.Time
	Payload   []byte
	Metadata  map[string]string
}

// CommitPayload describes a commit observed by the post-commit hook.
type CommitPayload struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
}

// CheckoutPayload describes a HEAD move observed by the post-checkout hook.
type CheckoutPayload struct {
	OldCommit string `json:"old_commit"`
	NewCommit string `json:"new_commit"`
	IsBranch  bool   `json:"is_branch"`
}

// RewritePayload describes one old->new commit mapping from post-rewrite.
type RewritePayload struct {
	Kind      string `json:"kind"` // amend or rebase
	OldCommit string `json:"old_commit"`
	NewCommit string `json:"new_commit"`
}

// RefUpdatePayload describes one line of a reference transaction.
type RefUpdatePayload struct {
	State   string `json:"state"` // prepared, committed, aborted
	Ref     string `json:"ref"`
	OldHash string `json:"old_hash"`
	NewHash string `json:"new_hash"`
}

// MergePayload describes a merge observed by the post-merge hook.
type MergePayload struct {
	Commit string `json:"commit"`
	Squash bool   `json:"squash"`
}

// Stats summarizes the event log for status reporting.
type Stats struct {
	Total  int64
	ByType map[string]int64
	First  time.Time
	Last   time.Time
}
