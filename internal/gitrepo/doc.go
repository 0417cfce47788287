// Package gitrepo locates and interrogates the Git repository that branchkit
// operates on.
//
// This package handles repository-level concerns including:
//   - Discovery of the enclosing repository (.git directory or gitdir file)
//   - Resolution of the hooks directory, honoring core.hooksPath and the
//     multi-hook layout (hooks_multi/<type>.d)
//   - The branchkit state directory under .git/branchkit
//   - Main branch detection from configuration and local branches
//   - Git version detection via the git binary, with ordered comparison
//
// Object-level reads (HEAD, branches, configuration) go through go-git;
// operations where the installed git binary is authoritative (version)
// go through Runner.
package gitrepo
