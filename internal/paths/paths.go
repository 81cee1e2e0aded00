// Package paths derives the canonical filesystem layout of a workspace.
// Every location is a pure join of the workspace root and a fixed suffix;
// nothing here touches the filesystem.
package paths

import "path/filepath"

// Layout resolves workspace locations. The zero value uses the current
// directory as root.
type Layout struct {
	root string
}

func NewLayout(root string) Layout {
	if root == "" {
		root = "."
	}
	return Layout{root: root}
}

func (l Layout) Root() string { return l.root }

// AgentConfigDir holds an agent's agent.yaml and prompt.md.
func (l Layout) AgentConfigDir(agent string) string {
	return filepath.Join(l.root, "agents", agent)
}

// AgentDataDir is the agent's sandbox: file tools never reach outside it.
func (l Layout) AgentDataDir(agent string) string {
	return filepath.Join(l.root, "data", agent)
}

// GlobalContextDir holds the Markdown/YAML files shared by every agent.
func (l Layout) GlobalContextDir() string {
	return filepath.Join(l.root, "context")
}

// SessionMemoryFile is the append-only transcript for one session.
func (l Layout) SessionMemoryFile(agent, sessionID string) string {
	return filepath.Join(l.root, "sessions", agent, sessionID+".json")
}

// SessionSummaryFile is the plain-text artifact written at session end.
func (l Layout) SessionSummaryFile(agent, sessionID string) string {
	return filepath.Join(l.root, "sessions", agent, sessionID+"-summary.txt")
}

// EventsFile is the JSONL telemetry sink.
func (l Layout) EventsFile() string {
	return filepath.Join(l.root, "events.jsonl")
}
