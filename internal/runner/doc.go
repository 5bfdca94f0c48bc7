// Package runner coordinates message exchange with an llm.Client and dispatches
// tool calls.
//
// Invariant:
//   - each tool round keeps the model's tool calls and their results together, and
//     every call gets exactly one result (errors included, flagged is_error).
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
//
// Tool rounds per turn are capped by MaxRounds.
package runner
