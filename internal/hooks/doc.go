// Package hooks installs and removes the git hooks that feed branchkit's
// event log.
//
// Each hook file owns only a marker-delimited region, so hooks already
// present in the repository keep working: installation splices the branchkit
// stub between markers, creating a fresh #!/bin/sh script when no hook file
// exists. Repeated installs are idempotent. Uninstalling rewrites the marker
// region to an inert comment rather than deleting the file, since the file
// may carry content branchkit does not own.
package hooks
