package agentcfg

import (
	"fmt"
	"strings"
)

// AgentConfig is one agent's record: model parameters, declared tool
// names, and an optional sandbox narrowing. Loaded fresh on every build.
type AgentConfig struct {
	// Model overrides settings model.name when non-empty.
	Model string `yaml:"model"`
	// MaxTokens overrides settings model.max_tokens when > 0.
	MaxTokens int `yaml:"max_tokens"`
	// Tools are resolved against the fixed registry; any unknown name
	// aborts construction.
	Tools []string `yaml:"tools"`
	// SandboxRoot optionally narrows the sandbox to a subdirectory of the
	// agent's data directory. It can never widen it.
	SandboxRoot string `yaml:"sandbox_root"`
}

// NotFoundError reports a missing required agent resource (config file or
// system prompt), naming both so failures point at the exact gap.
type NotFoundError struct {
	Agent   string
	Missing string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent %q not found: missing %s", e.Agent, e.Missing)
}

// summary renders the config as a prompt section so the model sees the
// parameters it is running under.
func (c AgentConfig) summary(name string) string {
	var b strings.Builder
	b.WriteString("# Agent configuration\n\n")
	fmt.Fprintf(&b, "name: %s\n", name)
	if c.Model != "" {
		fmt.Fprintf(&b, "model: %s\n", c.Model)
	}
	if c.MaxTokens > 0 {
		fmt.Fprintf(&b, "max_tokens: %d\n", c.MaxTokens)
	}
	if len(c.Tools) > 0 {
		fmt.Fprintf(&b, "tools: %s\n", strings.Join(c.Tools, ", "))
	} else {
		b.WriteString("tools: none\n")
	}
	return b.String()
}
