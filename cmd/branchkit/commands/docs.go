package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/branchkit/internal/manual"
)

// DocsCmd implements the 'docs' command.
type DocsCmd struct {
	Topic  string `arg:"" optional:"" help:"Manual topic to render to stdout"`
	Output string `short:"o" help:"Render all topics as HTML files into this directory"`
}

//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *DocsCmd) Run(_ *Global, _ *CLI) error {
	if cmd.Output != "" {
		written, err := manual.RenderAll(cmd.Output)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Println(path)
		}
		return nil
	}

	if cmd.Topic != "" {
		return manual.Render(os.Stdout, cmd.Topic)
	}

	fmt.Println("Available topics:")
	for _, topic := range manual.Topics() {
		fmt.Printf("  %s\n", topic)
	}
	fmt.Println("\nRender one with: branchkit docs <topic>")
	return nil
}
