// Package telemetry appends JSONL event records to a workspace-local sink.
// Emission is best-effort: failures are reported on stderr and never
// propagate to callers.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Emitter writes one JSON object per line to its sink path. A nil or
// disabled Emitter discards everything, so call sites never need a guard.
type Emitter struct {
	path    string
	enabled bool
}

// NewEmitter returns an emitter writing to path when enabled.
func NewEmitter(path string, enabled bool) *Emitter {
	return &Emitter{path: path, enabled: enabled}
}

// Emit writes a single event line, augmenting fields with RFC3339Nano time
// and the event name.
func (e *Emitter) Emit(name string, fields map[string]any) {
	if e == nil || !e.enabled || e.path == "" {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
			return
		}
	}

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", e.path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", e.path, err)
	}
}
