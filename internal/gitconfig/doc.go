// Package gitconfig manages branchkit's isolated Git configuration.
//
// All settings branchkit writes live in an isolated file under
// .git/branchkit/config, pulled into the repository's configuration through
// a marker-delimited [include] section spliced into .git/config. Keeping the
// settings isolated means uninstalling (or overriding) them never has to
// touch the user's own configuration entries.
package gitconfig
