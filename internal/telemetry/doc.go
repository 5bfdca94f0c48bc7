// Package telemetry writes structured JSONL events for a chat session.
//
// Events go to <dir>/events.jsonl, one zerolog line each, carrying "event", "time"
// and, when present in the context, "turn_id" and "conversation_id".
// Payloads hold sizes and counts only; raw user or model text is never written.
package telemetry
