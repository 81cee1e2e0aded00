package tools_test

import (
	"path/filepath"
	"testing"

	"github.com/llmterm/llmterm/internal/fsops"
)

// newSandbox gives each test an isolated sandbox root.
func newSandbox(t *testing.T) *fsops.Sandbox {
	t.Helper()
	sb, err := fsops.NewSandbox(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	return sb
}
