package tools_test

import (
	"strings"
	"testing"

	"github.com/llmterm/llmterm/tools"
)

func TestEditFile_CreateNewFile(t *testing.T) {
	sb := newSandbox(t)
	out, err := callTool(t, tools.NewEditFile(sb), tools.EditFileInput{Path: "new.txt", OldStr: "", NewStr: "content"})
	if err != nil {
		t.Fatalf("edit_file: %v", err)
	}
	if !strings.Contains(out, "Successfully created") {
		t.Fatalf("unexpected response: %q", out)
	}
	got, err := sb.ReadFile("new.txt")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got != "content" {
		t.Fatalf("content: %q", got)
	}
}

func TestEditFile_ReplaceAllOccurrences(t *testing.T) {
	sb := newSandbox(t)
	if err := sb.WriteFile("a.txt", "foo bar foo"); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if _, err := callTool(t, tools.NewEditFile(sb), tools.EditFileInput{Path: "a.txt", OldStr: "foo", NewStr: "baz"}); err != nil {
		t.Fatalf("edit_file: %v", err)
	}
	got, _ := sb.ReadFile("a.txt")
	if got != "baz bar baz" {
		t.Fatalf("content: %q", got)
	}
}

func TestEditFile_OldStrMissing(t *testing.T) {
	sb := newSandbox(t)
	if err := sb.WriteFile("a.txt", "hello"); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if _, err := callTool(t, tools.NewEditFile(sb), tools.EditFileInput{Path: "a.txt", OldStr: "absent", NewStr: "x"}); err == nil {
		t.Fatal("expected error when old_str not present")
	}
}

func TestEditFile_InvalidParams(t *testing.T) {
	sb := newSandbox(t)
	if _, err := callTool(t, tools.NewEditFile(sb), tools.EditFileInput{Path: "", OldStr: "a", NewStr: "b"}); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := callTool(t, tools.NewEditFile(sb), tools.EditFileInput{Path: "a.txt", OldStr: "same", NewStr: "same"}); err == nil {
		t.Fatal("expected error for old_str == new_str")
	}
}
