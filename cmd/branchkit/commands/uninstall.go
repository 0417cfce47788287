package commands

import (
	"fmt"

	"git.home.luguber.info/inful/branchkit/internal/gitconfig"
	"git.home.luguber.info/inful/branchkit/internal/gitrepo"
	"git.home.luguber.info/inful/branchkit/internal/hooks"
)

// UninstallCmd implements the 'uninstall' command.
type UninstallCmd struct{}

//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *UninstallCmd) Run(_ *Global, _ *CLI) error {
	repo, err := gitrepo.Discover(".")
	if err != nil {
		return err
	}

	fmt.Printf("Removing config file: %s\n", repo.IsolatedConfigPath())
	if err := gitconfig.RemoveInclude(repo); err != nil {
		return err
	}
	iso, err := gitconfig.LoadIsolated(repo.IsolatedConfigPath())
	if err != nil {
		return err
	}
	if err := iso.Delete(); err != nil {
		return err
	}

	if err := hooks.UninstallAll(repo); err != nil {
		return err
	}

	fmt.Println("Uninstalled branchkit.")
	fmt.Println("The event log under .git/branchkit is kept; delete the directory to remove it.")
	return nil
}
