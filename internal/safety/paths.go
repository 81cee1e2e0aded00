// Package safety provides helpers for sandboxed file access. Every agent
// gets its own sandbox root; tool paths are validated against it.
package safety

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// PolicyError is a machine-readable error body for surfacing back to the
// agent as JSON.
type PolicyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool_result payloads small.
func (e PolicyError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// ResolveRoot returns the absolute sandbox root for an agent: its data
// directory, optionally narrowed to subdir. Narrowing can only descend:
// an absolute subdir or one with parent traversal is rejected, so a
// declared sandbox root can never widen the boundary.
func ResolveRoot(dataDir, subdir string) (string, error) {
	if dataDir == "" {
		return "", fmt.Errorf("sandbox: empty data directory")
	}
	root, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("abs(%s): %w", dataDir, err)
	}
	if subdir == "" {
		return root, nil
	}
	if filepath.IsAbs(subdir) {
		return "", PolicyError{Code: "ERR_SANDBOX_ROOT", Message: "sandbox_root must be relative to the agent data directory"}
	}
	cleaned := filepath.Clean(subdir)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", PolicyError{Code: "ERR_SANDBOX_ROOT", Message: "sandbox_root escapes the agent data directory"}
	}
	return filepath.Join(root, cleaned), nil
}

// ValidatePath resolves relPath against absRoot and returns an absolute
// path inside the sandbox. It rejects absolute inputs, parent traversal,
// and symlink escapes. On violation, returns a PolicyError.
func ValidatePath(absRoot, relPath string) (string, error) {
	// Reject absolute inputs early
	if filepath.IsAbs(relPath) {
		return "", PolicyError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "absolute paths are not allowed"}
	}

	// Clean and normalise the provided relative path
	cleaned := filepath.Clean(relPath)
	// Special case: empty means "." (current dir)
	if cleaned == "" {
		cleaned = "."
	}

	// Join to make a candidate under the root
	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution.
	// 1) Resolve the whole candidate if it exists.
	// 2) Otherwise, resolve the deepest existing ancestor (the parent dir)
	//    and rejoin the final segment. This reveals escapes via a symlinked parent.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		// Resolve the parent if possible (useful when the leaf file doesn't exist yet)
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// The root itself may contain symlinks (e.g. /tmp on macOS); resolve it
	// the same way so the Rel comparison is apples-to-apples.
	if resolvedRoot, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolvedRoot
	}

	// Boundary check using filepath.Rel (robust against partial prefix matches)
	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", PolicyError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "requested path resolves outside the sandbox root"}
	}

	return candidate, nil
}
