// Package fsops performs file operations bound to one agent's sandbox.
package fsops

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/llmterm/llmterm/internal/safety"
)

// Sandbox confines reads and writes to a single absolute root, typically
// the agent's data directory.
type Sandbox struct {
	root string
}

// NewSandbox creates the root directory if needed and returns a sandbox
// bound to it. The root must already be validated (see safety.ResolveRoot).
func NewSandbox(root string) (*Sandbox, error) {
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		root = abs
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	// Resolve symlinks so later boundary checks compare like with like.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &Sandbox{root: root}, nil
}

func (s *Sandbox) Root() string { return s.root }

// ReadFile reads a file addressed by a relative path under the sandbox
// root. Policy violations surface as safety.PolicyError.
func (s *Sandbox) ReadFile(relPath string) (string, error) {
	absPath, err := safety.ValidatePath(s.root, relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.PolicyError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err // standard error for I/O issues (not policy)
	}
	return string(b), nil
}

// WriteFile writes content to a relative path under the sandbox root,
// creating parent directories as needed.
func (s *Sandbox) WriteFile(relPath, content string) error {
	absPath, err := safety.ValidatePath(s.root, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}

// ListFiles lists non-recursive directory entries for a relative directory
// path. It returns a JSON-encoded []string of names, with directories
// suffixed by "/".
func (s *Sandbox) ListFiles(relDir string) (string, error) {
	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidatePath(s.root, relDir)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
