// Package eventlog records repository events observed by branchkit's git
// hooks into a SQLite database under .git/branchkit.
//
// Every hook invocation appends one or more typed events (commit, merge,
// checkout, rewrite, ref update, gc) sharing a transaction ID, so events
// produced by a single git operation can be grouped when replaying history.
// The log is append-only; Prune is the only mutation besides Append.
package eventlog
