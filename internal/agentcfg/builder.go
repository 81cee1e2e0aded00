// Package agentcfg builds executable agents: per-agent config + system
// prompt + global context, with declared tools resolved against the fixed
// registry and sandboxed to the agent's own data directory.
package agentcfg

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/llmterm/llmterm/internal/config"
	"github.com/llmterm/llmterm/internal/contextdoc"
	"github.com/llmterm/llmterm/internal/fileio"
	"github.com/llmterm/llmterm/internal/fsops"
	"github.com/llmterm/llmterm/internal/paths"
	"github.com/llmterm/llmterm/internal/safety"
	"github.com/llmterm/llmterm/internal/telemetry"
	"github.com/llmterm/llmterm/tools"
)

// ConfigFileName and PromptFileName are the two required files in an
// agent's config directory.
const (
	ConfigFileName = "agent.yaml"
	PromptFileName = "prompt.md"
)

// Agent is a fully constructed agent, ready to be bound to a session.
type Agent struct {
	Name      string
	Config    AgentConfig
	Model     anthropic.Model
	MaxTokens int64
	// Prompt is the composed system context: global context, then the
	// config summary, then the agent's own system prompt, in that order.
	Prompt  string
	Tools   []tools.ToolDefinition
	Sandbox *fsops.Sandbox
}

// Builder assembles agents from the workspace layout.
type Builder struct {
	cfg    *config.Config
	layout paths.Layout
	events *telemetry.Emitter
}

func NewBuilder(cfg *config.Config, layout paths.Layout, events *telemetry.Emitter) *Builder {
	return &Builder{cfg: cfg, layout: layout, events: events}
}

// Build constructs the named agent. Required inputs (config file, system
// prompt) are fatal when missing; the global context is best-effort; tool
// resolution is fatal on the first unknown name.
func (b *Builder) Build(name string) (*Agent, error) {
	dir := b.layout.AgentConfigDir(name)

	var ac AgentConfig
	if err := fileio.DecodeYAML(filepath.Join(dir, ConfigFileName), &ac); err != nil {
		var nf *fileio.NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Agent: name, Missing: ConfigFileName}
		}
		return nil, err
	}

	prompt, err := fileio.ReadMarkdown(filepath.Join(dir, PromptFileName))
	if err != nil {
		var nf *fileio.NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Agent: name, Missing: PromptFileName}
		}
		return nil, err
	}

	// Best-effort: a broken context directory never blocks construction.
	global := contextdoc.New(b.layout.GlobalContextDir(), b.events).Build().Render()

	root, err := safety.ResolveRoot(b.layout.AgentDataDir(name), ac.SandboxRoot)
	if err != nil {
		return nil, err
	}
	sandbox, err := fsops.NewSandbox(root)
	if err != nil {
		return nil, err
	}

	defs, err := tools.Resolve(ac.Tools, sandbox)
	if err != nil {
		return nil, err
	}

	model := anthropic.Model(ac.Model)
	if model == "" {
		model = anthropic.Model(b.cfg.GetString("model.name"))
	}
	maxTokens := int64(ac.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = int64(b.cfg.GetInt("model.max_tokens"))
	}

	composed := composePrompt(global, ac.summary(name), prompt)

	b.events.Emit("agent_built", map[string]any{
		"agent":        name,
		"tools":        ac.Tools,
		"sandbox_root": sandbox.Root(),
		"prompt_bytes": len(composed),
	})

	return &Agent{
		Name:      name,
		Config:    ac,
		Model:     model,
		MaxTokens: maxTokens,
		Prompt:    composed,
		Tools:     defs,
		Sandbox:   sandbox,
	}, nil
}

// composePrompt joins the three prompt sections in their fixed order,
// dropping empty ones.
func composePrompt(global, summary, system string) string {
	sections := make([]string, 0, 3)
	for _, s := range []string{global, summary, system} {
		if t := strings.TrimSpace(s); t != "" {
			sections = append(sections, t)
		}
	}
	return strings.Join(sections, "\n\n")
}
