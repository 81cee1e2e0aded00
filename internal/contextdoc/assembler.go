// Package contextdoc assembles the global context document shared by
// every agent. Assembly is best-effort: one bad file never blocks agent
// construction.
package contextdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llmterm/llmterm/internal/fileio"
	"github.com/llmterm/llmterm/internal/telemetry"
)

// Section is one source file's contribution to the document.
type Section struct {
	Heading string
	Body    string
}

// Document is the assembled global context, ordered by source filename.
type Document struct {
	Sections []Section
}

// Render concatenates the sections into one prompt-ready string. An empty
// document renders to "".
func (d Document) Render() string {
	if len(d.Sections) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("# Global context\n")
	for _, s := range d.Sections {
		b.WriteString("\n## ")
		b.WriteString(s.Heading)
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(s.Body, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// Assembler builds the document from the global context directory.
type Assembler struct {
	dir    string
	events *telemetry.Emitter
}

func New(dir string, events *telemetry.Emitter) *Assembler {
	return &Assembler{dir: dir, events: events}
}

// Build enumerates the Markdown and YAML files directly under the context
// directory in sorted filename order. YAML files are parsed first so a
// malformed one is skipped rather than injected verbatim; their raw text is
// what lands in the section body. Missing directory or unreadable files
// are logged and skipped.
func (a *Assembler) Build() Document {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		a.skip(a.dir, err)
		return Document{}
	}

	// os.ReadDir sorts by filename; keep an explicit sort anyway since the
	// assembled document must be reproducible.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".md", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	doc := Document{}
	for _, name := range names {
		path := filepath.Join(a.dir, name)
		body, err := a.readSection(path)
		if err != nil {
			a.skip(path, err)
			continue
		}
		doc.Sections = append(doc.Sections, Section{Heading: name, Body: body})
	}
	return doc
}

func (a *Assembler) readSection(path string) (string, error) {
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		// Validate syntax; an empty mapping is fine, malformed is not.
		if _, err := fileio.ReadYAML(path); err != nil {
			return "", err
		}
	}
	return fileio.ReadMarkdown(path)
}

func (a *Assembler) skip(path string, err error) {
	fmt.Fprintf(os.Stderr, "context: skipping %s: %v\n", path, err)
	a.events.Emit("context_file_skipped", map[string]any{
		"path":  path,
		"error": err.Error(),
	})
}
