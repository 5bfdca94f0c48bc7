// Package flow is the chat orchestrator: it assembles the prompt, runs one turn
// through the runner (with the generate_haiku tool offered), stores any haiku the
// model produces, and records the exchange in the conversation history.
//
// A turn moves AwaitingResponse -> ToolExecution -> FinalResponse, skipping
// ToolExecution when the model answers directly. History is only appended once a
// turn succeeds: the user message(s) followed by exactly one assistant message.
package flow
