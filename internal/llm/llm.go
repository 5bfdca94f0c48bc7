// Package llm is the provider-neutral contract between the flow and a model backend.
//
// A turn is a Request (system prompt, text history, completed tool rounds, tool specs)
// answered by a Response (text and/or tool calls). Tool rounds stay out of the
// persistent transcript; the backend replays them as tool_use/tool_result pairs.
package llm

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

// StopReason mirrors why the model stopped producing output.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
)

// ToolCall is a tool invocation requested by the model, arguments left raw.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolOutput answers one ToolCall.
type ToolOutput struct {
	CallID  string
	Content string
	IsError bool
}

// Round is one completed model->tool exchange inside a turn.
// Every call in Calls has exactly one matching output in Outputs.
type Round struct {
	Text    string
	Calls   []ToolCall
	Outputs []ToolOutput
}

type Request struct {
	System   string
	Messages []memory.Message
	Rounds   []Round
	Tools    []tools.ToolDefinition
}

type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

type Response struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason StopReason
	Usage      Usage
}

// WantsTools reports whether the model asked for at least one tool call.
func (r *Response) WantsTools() bool { return r != nil && len(r.ToolCalls) > 0 }

// Client sends one request to a model and blocks for its answer.
type Client interface {
	Call(ctx context.Context, req Request) (*Response, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (*Response, error)

func (f ClientFunc) Call(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }
