package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepo       = "repository"
	KeyPath       = "path"
	KeyHook       = "hook"
	KeyBranch     = "branch"
	KeyAlias      = "alias"
	KeyTxnID      = "txn_id"
	KeyEventType  = "event_type"
	KeyRef        = "ref"
	KeyCommit     = "commit"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Hook(h string) slog.Attr         { return slog.String(KeyHook, h) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Alias(a string) slog.Attr        { return slog.String(KeyAlias, a) }
func TxnID(id string) slog.Attr       { return slog.String(KeyTxnID, id) }
func EventType(t string) slog.Attr    { return slog.String(KeyEventType, t) }
func Ref(r string) slog.Attr          { return slog.String(KeyRef, r) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
