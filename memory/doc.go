// Package memory holds the in-process conversation transcript.
//
// Model:
//   - Only text messages are kept (role + content). Tool rounds stay inside a turn.
//   - Insertion order is the dialogue order; nothing is ever removed.
//   - Nothing is written to disk; the transcript lives as long as the process.
package memory
