package gitrepo

// mainBranchCandidates are tried in order when no main branch is configured.
var mainBranchCandidates = []string{
	"master",
	"main",
	"mainline",
	"devel",
	"develop",
	"development",
	"trunk",
}

// DetectMainBranch determines the repository's main branch name.
// Order: init.defaultBranch (when the branch actually exists locally), then
// the candidate list. Returns "" when nothing matches.
func (r *Repo) DetectMainBranch() string {
	if name := r.DefaultBranchName(); name != "" && r.HasLocalBranch(name) {
		return name
	}
	for _, name := range mainBranchCandidates {
		if r.HasLocalBranch(name) {
			return name
		}
	}
	return ""
}
