package windowing_test

import (
	"strings"
	"testing"

	"github.com/llmterm/llmterm/internal/windowing"
	"github.com/llmterm/llmterm/memory"
)

func msg(role, text string) memory.Message {
	return memory.Message{Role: role, Text: text}
}

func TestPrepareHistory_KeepsNewestWithinBudget(t *testing.T) {
	msgs := []memory.Message{
		msg("user", strings.Repeat("a", 50)),
		msg("assistant", strings.Repeat("b", 50)),
		msg("user", strings.Repeat("c", 10)),
		msg("assistant", strings.Repeat("d", 10)),
	}
	// Each of the two newest costs 14 (10 runes + overhead); budget fits both
	// but neither of the older ones.
	window, stats := windowing.PrepareHistory(msgs, 30)
	if len(window) != 2 {
		t.Fatalf("window: got %d messages, want 2", len(window))
	}
	if window[0].Text[0] != 'c' || window[1].Text[0] != 'd' {
		t.Fatalf("window must keep the newest turns: %+v", window)
	}
	if stats.Included != 2 || stats.Skipped != 2 {
		t.Fatalf("stats: %+v", stats)
	}
	if stats.Total > stats.Budget {
		t.Fatalf("total %d exceeds budget %d", stats.Total, stats.Budget)
	}
}

func TestPrepareHistory_AllFit(t *testing.T) {
	msgs := []memory.Message{msg("user", "hi"), msg("assistant", "hello")}
	window, stats := windowing.PrepareHistory(msgs, 1000)
	if len(window) != 2 || stats.Skipped != 0 {
		t.Fatalf("window %d, stats %+v", len(window), stats)
	}
}

func TestPrepareHistory_NewestAloneOverBudget(t *testing.T) {
	msgs := []memory.Message{msg("user", strings.Repeat("x", 100))}
	window, stats := windowing.PrepareHistory(msgs, 10)
	if len(window) != 0 {
		t.Fatalf("expected empty window, got %d", len(window))
	}
	if !stats.OverBudgetNewest {
		t.Fatal("OverBudgetNewest must be set")
	}
}

func TestPrepareHistory_ZeroBudget(t *testing.T) {
	msgs := []memory.Message{msg("user", "hi")}
	window, stats := windowing.PrepareHistory(msgs, 0)
	if len(window) != 0 || !stats.OverBudgetNewest {
		t.Fatalf("window %d, stats %+v", len(window), stats)
	}
}

func TestPrepareHistory_Empty(t *testing.T) {
	window, stats := windowing.PrepareHistory(nil, 100)
	if window != nil || stats.Included != 0 {
		t.Fatalf("window %v, stats %+v", window, stats)
	}
}
