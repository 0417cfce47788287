// Package manual renders branchkit's embedded command documentation from
// Markdown to HTML.
package manual

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed docs/*.md
var docsFS embed.FS

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Topics lists the available manual topics, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics
}

// Render writes the HTML rendering of one topic.
func Render(w io.Writer, topic string) error {
	source, err := fs.ReadFile(docsFS, "docs/"+topic+".md")
	if err != nil {
		return fmt.Errorf("unknown manual topic: %s", topic)
	}
	if err := md.Convert(source, w); err != nil {
		return fmt.Errorf("render topic %s: %w", topic, err)
	}
	return nil
}

// RenderAll writes one HTML file per topic into dir, returning the file
// paths written.
func RenderAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create manual directory: %w", err)
	}

	var written []string
	for _, topic := range Topics() {
		var buf bytes.Buffer
		if err := Render(&buf, topic); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, topic+".html")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write manual page %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
