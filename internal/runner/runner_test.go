package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/llmterm/llmterm/internal/runner"
	"github.com/llmterm/llmterm/internal/telemetry"
	"github.com/llmterm/llmterm/tools"
)

type capture struct {
	body []byte
}

type fakeTransport struct {
	respStatus int
	respBody   []byte
	captured   *capture
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if f.captured != nil {
		f.captured.body = b
	}
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
		// Base URL is irrelevant since transport intercepts
	)
	return &c
}

type echoInput struct {
	Msg string `json:"msg"`
}

func echoTool() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "echo",
		Description: "echo the message back",
		InputSchema: tools.GenerateSchema[echoInput](),
		Function: func(input json.RawMessage) (string, error) {
			var in echoInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			return in.Msg, nil
		},
	}
}

func readEventLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read events: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid event JSON: %v", err)
		}
		out = append(out, m)
	}
	return out
}

func TestRunOneStep_DispatchesToolUse(t *testing.T) {
	eventsPath := filepath.Join(t.TempDir(), "events.jsonl")
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "t1", "name": "echo", "input": {"msg": "hi"}}
		]
	}`
	cap := &capture{}
	cli := newClientWithTransport(&fakeTransport{respStatus: 200, respBody: []byte(resp), captured: cap})

	r := runner.New(cli, "test-model", 1024, "be brief", []tools.ToolDefinition{echoTool()}, telemetry.NewEmitter(eventsPath, true))
	r.Out = io.Discard

	ctx := telemetry.WithSessionID(context.Background(), "s1")
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("please echo hi"))}
	_, toolResults, err := r.RunOneStep(ctx, conv)
	if err != nil {
		t.Fatalf("RunOneStep: %v", err)
	}
	if len(toolResults) != 1 {
		t.Fatalf("tool results: got %d want 1", len(toolResults))
	}

	// System prompt and tool declarations must travel with the request.
	var body map[string]any
	if err := json.Unmarshal(cap.body, &body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if body["system"] == nil {
		t.Fatal("system prompt missing from request")
	}
	if body["tools"] == nil {
		t.Fatal("tool declarations missing from request")
	}

	// A tool_exec event carrying the session ID must be emitted.
	var exec map[string]any
	for _, m := range readEventLines(t, eventsPath) {
		if m["event"] == "tool_exec" {
			exec = m
		}
	}
	if exec == nil {
		t.Fatal("no tool_exec event found")
	}
	if exec["tool_name"] != "echo" {
		t.Errorf("tool_name: got %v", exec["tool_name"])
	}
	if exec["session_id"] != "s1" {
		t.Errorf("session_id: got %v", exec["session_id"])
	}
	if exec["error"] != nil {
		t.Errorf("error should be null on success, got %v", exec["error"])
	}
}

func TestRunOneStep_UnknownRuntimeTool_ErrorResult(t *testing.T) {
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "t1", "name": "invented", "input": {}}
		]
	}`
	cli := newClientWithTransport(&fakeTransport{respStatus: 200, respBody: []byte(resp)})

	r := runner.New(cli, "test-model", 1024, "", []tools.ToolDefinition{echoTool()}, nil)
	r.Out = io.Discard

	_, toolResults, err := r.RunOneStep(context.Background(), []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("x"))})
	if err != nil {
		t.Fatalf("RunOneStep: %v", err)
	}
	if len(toolResults) != 1 {
		t.Fatalf("tool results: got %d want 1", len(toolResults))
	}
	tr := toolResults[0].OfToolResult
	if tr == nil {
		t.Fatal("expected a tool_result block")
	}
	if !tr.IsError.Valid() || !tr.IsError.Value {
		t.Fatal("unknown tool must produce an error result")
	}
}

func TestRunOneStep_TextBlockWrittenToOut(t *testing.T) {
	resp := `{"role":"assistant","content":[{"type":"text","text":"hello there"}]}`
	cli := newClientWithTransport(&fakeTransport{respStatus: 200, respBody: []byte(resp)})

	var buf bytes.Buffer
	r := runner.New(cli, "test-model", 1024, "", nil, nil)
	r.Out = &buf

	_, toolResults, err := r.RunOneStep(context.Background(), []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("hi"))})
	if err != nil {
		t.Fatalf("RunOneStep: %v", err)
	}
	if len(toolResults) != 0 {
		t.Fatalf("tool results: got %d want 0", len(toolResults))
	}
	if !strings.Contains(buf.String(), "hello there") {
		t.Fatalf("output: %q", buf.String())
	}
}
