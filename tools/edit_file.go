package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/llmterm/llmterm/internal/fsops"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path"`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; must be present once when editing an existing file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with"`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

// NewEditFile returns the edit_file tool bound to sb.
func NewEditFile(sb *fsops.Sandbox) ToolDefinition {
	return ToolDefinition{
		Name: "edit_file",
		Description: `Create or modify a text file addressed by a relative path within the agent's data directory.

When old_str is empty and the file doesn't exist, a new file is created.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
		InputSchema: EditFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return editFile(sb, input)
		},
	}
}

func editFile(sb *fsops.Sandbox, input json.RawMessage) (string, error) {
	var in EditFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	if in.Path == "" || in.OldStr == in.NewStr {
		return "", fmt.Errorf("invalid edit parameters")
	}

	oldContent, readErr := sb.ReadFile(in.Path)
	if readErr != nil {
		// If file does not exist and OldStr is empty, create new file with NewStr
		if in.OldStr == "" {
			if err := sb.WriteFile(in.Path, in.NewStr); err != nil {
				return "", err
			}
			return fmt.Sprintf("Successfully created file %s", in.Path), nil
		}
		// Otherwise propagate the read error (could be PolicyError or other I/O error)
		return "", readErr
	}

	// If the file exists, require a non-empty old_str to avoid ambiguous behaviour
	if in.OldStr == "" {
		return "", fmt.Errorf("old_str must be provided when editing an existing file")
	}

	// Replace existing content
	newContent := strings.ReplaceAll(oldContent, in.OldStr, in.NewStr)
	if newContent == oldContent {
		return "", fmt.Errorf("old_str not found in file")
	}

	if err := sb.WriteFile(in.Path, newContent); err != nil {
		return "", err
	}
	return "OK", nil
}
