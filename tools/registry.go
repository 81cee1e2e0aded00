package tools

import (
	"fmt"
	"sort"

	"github.com/llmterm/llmterm/internal/fsops"
)

// UnknownToolError reports a declared tool name with no registered factory.
// Tool resolution is never best-effort: skipping a missing tool would
// change agent behaviour silently, so it aborts agent construction.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Factory builds a tool definition bound to an agent's sandbox.
type Factory func(sb *fsops.Sandbox) ToolDefinition

// factories is the fixed capability registry. Declared tool names are
// validated exhaustively against it at agent build time.
var factories = map[string]Factory{
	"read_file":  NewReadFile,
	"list_files": NewListFiles,
	"edit_file":  NewEditFile,
}

// Names returns the registered tool names, sorted.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve instantiates each declared tool against sb, in declaration
// order. The first unknown name fails the whole resolution.
func Resolve(declared []string, sb *fsops.Sandbox) ([]ToolDefinition, error) {
	defs := make([]ToolDefinition, 0, len(declared))
	for _, name := range declared {
		factory, ok := factories[name]
		if !ok {
			return nil, &UnknownToolError{Name: name}
		}
		defs = append(defs, factory(sb))
	}
	return defs, nil
}
