package gitconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// Isolated is branchkit's own config file, read and written in Git's
// configuration format.
type Isolated struct {
	path string
	cfg  *format.Config
}

// LoadIsolated reads the isolated config file, treating a missing file as
// empty so first installation and re-installation share one code path.
func LoadIsolated(path string) (*Isolated, error) {
	cfg := format.New()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer func() { _ = f.Close() }()
		if derr := format.NewDecoder(f).Decode(cfg); derr != nil {
			return nil, fmt.Errorf("decode isolated config %s: %w", path, derr)
		}
	case os.IsNotExist(err):
		// First install.
	default:
		return nil, fmt.Errorf("open isolated config %s: %w", path, err)
	}

	return &Isolated{path: path, cfg: cfg}, nil
}

// Path returns the file path backing this config.
func (i *Isolated) Path() string { return i.path }

// Set stores a value under a dotted key such as "branchkit.core.mainBranch".
// The first component is the section, the last the option name, and any
// middle components form the subsection.
func (i *Isolated) Set(key, value string) error {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return err
	}
	if subsection == "" {
		i.cfg.Section(section).SetOption(name, value)
		return nil
	}
	i.cfg.Section(section).Subsection(subsection).SetOption(name, value)
	return nil
}

// Get returns the value stored under a dotted key, or "" when unset.
func (i *Isolated) Get(key string) string {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return ""
	}
	if subsection == "" {
		return i.cfg.Section(section).Option(name)
	}
	return i.cfg.Section(section).Subsection(subsection).Option(name)
}

// Unset removes a dotted key. Unsetting an absent key is not an error.
func (i *Isolated) Unset(key string) error {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return err
	}
	if subsection == "" {
		i.cfg.Section(section).RemoveOption(name)
		return nil
	}
	i.cfg.Section(section).Subsection(subsection).RemoveOption(name)
	return nil
}

// Aliases returns all alias entries currently stored.
func (i *Isolated) Aliases() map[string]string {
	out := map[string]string{}
	for _, opt := range i.cfg.Section("alias").Options {
		out[opt.Key] = opt.Value
	}
	return out
}

// Save writes the config file, creating its parent directory as needed.
func (i *Isolated) Save() error {
	if err := os.MkdirAll(filepath.Dir(i.path), 0o750); err != nil {
		return fmt.Errorf("create isolated config directory: %w", err)
	}

	f, err := os.OpenFile(i.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create isolated config %s: %w", i.path, err)
	}
	defer func() { _ = f.Close() }()

	if err := format.NewEncoder(f).Encode(i.cfg); err != nil {
		return fmt.Errorf("encode isolated config: %w", err)
	}
	return nil
}

// Delete removes the isolated config file, tolerating its absence.
func (i *Isolated) Delete() error {
	if err := os.Remove(i.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete isolated config: %w", err)
	}
	return nil
}

func splitKey(key string) (section, subsection, name string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("malformed config key: %q", key)
	}
	section = parts[0]
	name = parts[len(parts)-1]
	if len(parts) > 2 {
		subsection = strings.Join(parts[1:len(parts)-1], ".")
	}
	return section, subsection, name, nil
}
