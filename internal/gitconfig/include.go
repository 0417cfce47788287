package gitconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
)

const (
	sectionMarkerStart = "# branchkit section start"
	sectionMarkerEnd   = "# branchkit section end"
)

// sectionString wraps contents in the branchkit marker comments.
func sectionString(contents string) string {
	return sectionMarkerStart + "\n" + contents + sectionMarkerEnd + "\n"
}

var sectionRegex = regexp.MustCompile(`(?s)` +
	regexp.QuoteMeta(sectionMarkerStart) + "\n" + `(.*?)` + regexp.QuoteMeta(sectionMarkerEnd) + "\n")

// UpdateConfigText splices the branchkit include section into git config
// text. The include pulls in the isolated file and then the user's global
// config, so user entries keep overriding ours. Find-and-replace on the
// marker section keeps repeated installs idempotent.
func UpdateConfigText(oldConfig, includePathRelative string) string {
	section := sectionString(fmt.Sprintf(
		"[include]\n\tpath = \"%s\"\n\tpath = \"~/.gitconfig\"\n",
		includePathRelative,
	))
	if sectionRegex.MatchString(oldConfig) {
		return sectionRegex.ReplaceAllString(oldConfig, section)
	}
	return section + oldConfig
}

// RemoveConfigText strips the branchkit include section from config text.
func RemoveConfigText(oldConfig string) string {
	return sectionRegex.ReplaceAllString(oldConfig, "")
}

// InstallInclude splices the include section into the repository's config
// file. A missing config file is treated as empty. The include path is
// stored relative to the git directory with forward slashes; backslashes in
// an include directive break git config parsing on Windows.
func InstallInclude(repo *gitrepo.Repo) error {
	rel, err := filepath.Rel(repo.GitDir(), repo.IsolatedConfigPath())
	if err != nil {
		return fmt.Errorf("relativize isolated config path: %w", err)
	}
	rel = filepath.ToSlash(rel)

	configPath := repo.ConfigPath()
	old, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read repository config: %w", err)
	}

	updated := UpdateConfigText(string(old), rel)
	if err := os.WriteFile(configPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write repository config: %w", err)
	}
	return nil
}

// RemoveInclude strips the include section from the repository's config
// file. Absence of the file or the section is not an error.
func RemoveInclude(repo *gitrepo.Repo) error {
	configPath := repo.ConfigPath()
	old, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read repository config: %w", err)
	}

	updated := RemoveConfigText(string(old))
	if updated == string(old) {
		return nil
	}
	if err := os.WriteFile(configPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write repository config: %w", err)
	}
	return nil
}
