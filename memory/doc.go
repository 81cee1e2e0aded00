// Package memory provides per-session conversation persistence.
//
// Persistence model:
//   - Only text messages are stored (role + text). Tool blocks are transient.
//   - One JSON transcript file per session, append-only while it runs.
//   - A plain-text summary is written when the session ends.
package memory
