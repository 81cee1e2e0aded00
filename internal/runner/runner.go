// Package runner coordinates message exchange with the Anthropic Messages
// API and dispatches tool calls for one agent.
//
// Invariant:
//   - tool_use and the corresponding tool_result are kept adjacent within
//     a turn to preserve execution context and simplify follow-up reasoning.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/llmterm/llmterm/internal/telemetry"
	"github.com/llmterm/llmterm/tools"
)

// Runner drives assistant turns for one constructed agent.
type Runner struct {
	Client    *anthropic.Client
	Model     anthropic.Model
	MaxTokens int64
	// System is the agent's composed prompt context, sent with every call.
	System string
	Tools  []tools.ToolDefinition

	// Out receives assistant text as it arrives; defaults to os.Stdout.
	Out io.Writer
	// Label prefixes each assistant text block (the CLI passes a colored one).
	Label  string
	events *telemetry.Emitter
}

func New(client *anthropic.Client, model anthropic.Model, maxTokens int64, system string, toolDefs []tools.ToolDefinition, events *telemetry.Emitter) *Runner {
	return &Runner{
		Client:    client,
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Tools:     toolDefs,
		Out:       os.Stdout,
		events:    events,
	}
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// RunOneStep sends the conversation and either writes text to Out or
// returns tool results to be appended by the caller.
func (r *Runner) RunOneStep(ctx context.Context, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	params := anthropic.MessageNewParams{
		Model:     r.Model,
		MaxTokens: r.MaxTokens,
		Messages:  conv,
	}
	if r.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.System}}
	}
	if len(r.Tools) > 0 {
		params.Tools = r.anthropicTools()
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	toolResults := []anthropic.ContentBlockParamUnion{}
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if r.Label != "" {
				fmt.Fprintf(out, "%s %s\n", r.Label, v.Text)
			} else {
				fmt.Fprintln(out, v.Text)
			}
		case anthropic.ToolUseBlock:
			// Pass raw JSON input through to the tool implementation
			input := json.RawMessage(v.JSON.Input.Raw())
			res := r.execTool(ctx, v.ID, v.Name, input)
			toolResults = append(toolResults, res)
		}
	}
	return msg, toolResults, nil
}

func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var def *tools.ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			def = &r.Tools[i]
			break
		}
	}

	sessionID, _ := telemetry.SessionIDFromContext(ctx)

	// Helper to emit a tool_exec event
	emit := func(durationMs int64, inputSize int, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": durationMs,
			"input_size":  inputSize,
			"output_size": outputSize,
			"session_id":  sessionID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		r.events.Emit("tool_exec", fields)
	}

	start := time.Now()
	inSize := len(input)

	// The registry validated declared names at build time; this guards
	// against the model inventing one anyway.
	if def == nil {
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool not found")
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	resp, err := def.Function(input)
	if err != nil {
		// Emit a generic error string to avoid leaking raw payloads in telemetry
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool error")
		// Preserve detailed error message in the tool result content returned to the model
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	outSize := len(resp)
	emit(time.Since(start).Milliseconds(), inSize, outSize, "")
	return anthropic.NewToolResultBlock(id, resp, false)
}
