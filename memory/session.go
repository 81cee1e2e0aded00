package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Session is one bounded conversation with an agent: an append-only
// message log flushed after each turn, plus a plain-text summary written
// at session end. A Session is owned by a single goroutine.
type Session struct {
	Agent string
	ID    string

	memoryPath  string
	summaryPath string
	msgs        []Message
}

// NewSession binds a session to its memory and summary files, seeding it
// with any previously persisted transcript (resume).
func NewSession(agent, id, memoryPath, summaryPath string, history []Message) *Session {
	return &Session{
		Agent:       agent,
		ID:          id,
		memoryPath:  memoryPath,
		summaryPath: summaryPath,
		msgs:        history,
	}
}

// Append records one message. The log is append-only for the session's
// lifetime.
func (s *Session) Append(role, text string) {
	s.msgs = append(s.msgs, Message{Role: role, Text: text})
}

// Messages returns the current transcript, oldest first.
func (s *Session) Messages() []Message { return s.msgs }

// Flush persists the transcript. Called after every completed turn so a
// crash loses at most the turn in flight.
func (s *Session) Flush() error {
	return SaveTranscript(s.memoryPath, s.msgs)
}

const summaryClamp = 200 // runes kept per quoted line in the summary

// WriteSummary writes the end-of-session plain-text artifact.
func (s *Session) WriteSummary() error {
	var userTurns, assistantTurns int
	var first, last string
	for _, m := range s.msgs {
		switch m.Role {
		case "user":
			userTurns++
			if first == "" {
				first = m.Text
			}
		case "assistant":
			assistantTurns++
			last = m.Text
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s with agent %s\n", s.ID, s.Agent)
	fmt.Fprintf(&b, "Turns: %d user, %d assistant\n", userTurns, assistantTurns)
	if first != "" {
		fmt.Fprintf(&b, "Opened with: %s\n", clampLine(first))
	}
	if last != "" {
		fmt.Fprintf(&b, "Last reply: %s\n", clampLine(last))
	}

	if dir := filepath.Dir(s.summaryPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.summaryPath, []byte(b.String()), 0o644)
}

func clampLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= summaryClamp {
		return s
	}
	r := []rune(s)
	return string(r[:summaryClamp]) + "…"
}
