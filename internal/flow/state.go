package flow

import (
	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

// Phase is where the current turn stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingResponse
	PhaseToolExecution
	PhaseFinalResponse
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	case PhaseToolExecution:
		return "tool_execution"
	case PhaseFinalResponse:
		return "final_response"
	default:
		return "unknown"
	}
}

// State is the conversation state owned by a Flow.
type State struct {
	ID      string
	History memory.Conversation
	Haiku   *tools.Haiku // nil until the tool runs
	Phase   Phase
}

// Result is the outcome of a successful turn.
type Result struct {
	Text        string
	ToolsCalled int
}
