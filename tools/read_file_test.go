package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llmterm/llmterm/tools"
)

func callTool(t *testing.T, def tools.ToolDefinition, input any) (string, error) {
	t.Helper()
	b, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	return def.Function(b)
}

func TestReadFile_FullContent(t *testing.T) {
	sb := newSandbox(t)
	if err := os.WriteFile(filepath.Join(sb.Root(), "a.txt"), []byte("one\ntwo\nthree"), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	out, err := callTool(t, tools.NewReadFile(sb), tools.ReadFileInput{Path: "a.txt"})
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if out != "one\ntwo\nthree" {
		t.Fatalf("content: %q", out)
	}
}

func TestReadFile_OffsetLimit_Sentinel(t *testing.T) {
	sb := newSandbox(t)
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = strings.Repeat("x", 3)
	}
	if err := os.WriteFile(filepath.Join(sb.Root(), "a.txt"), []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	out, err := callTool(t, tools.NewReadFile(sb), tools.ReadFileInput{Path: "a.txt", Offset: 2, Limit: 3})
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if !strings.Contains(out, "truncated") {
		t.Fatalf("expected truncation sentinel, got %q", out)
	}
	if got := strings.Count(strings.TrimSuffix(out, "\n"), "xxx"); got != 3 {
		t.Fatalf("expected 3 lines in window, got %d (%q)", got, out)
	}
}

func TestReadFile_LongLineClamped(t *testing.T) {
	sb := newSandbox(t)
	long := strings.Repeat("y", 5000)
	if err := os.WriteFile(filepath.Join(sb.Root(), "a.txt"), []byte(long), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	out, err := callTool(t, tools.NewReadFile(sb), tools.ReadFileInput{Path: "a.txt"})
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if !strings.Contains(out, "truncated") {
		t.Fatal("expected truncation sentinel for clamped line")
	}
	if len(out) >= 5000 {
		t.Fatalf("line not clamped: %d bytes", len(out))
	}
}

func TestReadFile_OutsideSandboxRejected(t *testing.T) {
	sb := newSandbox(t)
	if _, err := callTool(t, tools.NewReadFile(sb), tools.ReadFileInput{Path: "../secrets.txt"}); err == nil {
		t.Fatal("expected sandbox violation error")
	}
}
