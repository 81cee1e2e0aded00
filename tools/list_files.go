package tools

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/llmterm/llmterm/internal/fsops"
)

type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to the sandbox root)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

// defaultListFilesPageSize is the fallback page size when page_size <= 0.
const defaultListFilesPageSize = 200

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// NewListFiles returns the list_files tool bound to sb.
func NewListFiles(sb *fsops.Sandbox) ToolDefinition {
	return ToolDefinition{
		Name:        "list_files",
		Description: "List names of files in a directory within the agent's data directory (non-recursive).",
		InputSchema: ListFilesInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return listFiles(sb, input)
		},
	}
}

// listFiles lists non-recursive directory entries under the sandbox, then
// applies deterministic sorting and simple paging at the tool layer.
// Defaults:
//   - page: 1 when <= 0
//   - page_size: 200 when <= 0
//
// Contract: returns a JSON-encoded []string.
func listFiles(sb *fsops.Sandbox, input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	page := in.Page
	// Default benign inputs for LLM callers to keep behaviour predictable.
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListFilesPageSize
	}

	namesJSON, err := sb.ListFiles(in.Path)
	if err != nil {
		return "", err
	}
	var names []string
	if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
		return "", fmt.Errorf("invalid list_files payload: %w", err)
	}
	// Standardise order so paging is deterministic across filesystems.
	sort.Strings(names)

	start := (page - 1) * pageSize
	// Out-of-range page returns an empty JSON array; keep the output contract.
	if start >= len(names) {
		return "[]", nil
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}
	paged := names[start:end]

	b, err := json.Marshal(paged)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
