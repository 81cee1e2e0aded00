// Package windowing trims a persisted transcript to fit a rune budget
// before it is replayed into a session, keeping the newest turns.
package windowing

import (
	"unicode/utf8"

	"github.com/llmterm/llmterm/memory"
)

// Stats summarizes the result of history preparation.
//
// Fields:
//   - Total: estimated cost of included messages only.
//   - Budget: the budget used.
//   - Included / Skipped: message counts.
//   - OverBudgetNewest: true when not even the newest message fits,
//     either because it alone exceeds Budget or because Budget is not
//     positive.
type Stats struct {
	Total            int
	Budget           int
	Included         int
	Skipped          int
	OverBudgetNewest bool
}

// Fixed per-message overhead for deterministic counts.
const messageOverhead = 4

func cost(m memory.Message) int {
	return utf8.RuneCountInString(m.Text) + messageOverhead
}

// PrepareHistory returns the newest suffix of msgs (oldest→newest) whose
// total cost fits within budget.
//
// Rules:
//   - Include whole messages scanning newest→oldest while total ≤ budget.
//   - If the newest message alone exceeds budget, return an empty window
//     and set OverBudgetNewest; the caller starts the session with no
//     replayed history rather than failing.
//   - If budget ≤ 0, return an empty window; OverBudgetNewest is set
//     because nothing fits.
func PrepareHistory(msgs []memory.Message, budget int) ([]memory.Message, Stats) {
	if len(msgs) == 0 {
		return nil, Stats{Budget: budget}
	}
	if budget <= 0 {
		return nil, Stats{Budget: budget, Skipped: len(msgs), OverBudgetNewest: true}
	}

	total := 0
	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		c := cost(msgs[i])
		if start == len(msgs) && c > budget {
			// Newest alone doesn't fit.
			return nil, Stats{Budget: budget, Skipped: len(msgs), OverBudgetNewest: true}
		}
		if total+c > budget {
			break
		}
		total += c
		start = i
	}

	window := msgs[start:]
	return window, Stats{
		Total:    total,
		Budget:   budget,
		Included: len(window),
		Skipped:  len(msgs) - len(window),
	}
}
