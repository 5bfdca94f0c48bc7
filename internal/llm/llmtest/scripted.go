// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petasbytes/haiku-agent/internal/llm"
)

var ErrExhausted = errors.New("llmtest: script exhausted")

// Scripted replays Responses in order and records every request it receives.
// When Err is set every call fails with it instead.
type Scripted struct {
	Responses []*llm.Response
	Err       error
	Requests  []llm.Request

	next int
}

func (s *Scripted) Call(ctx context.Context, req llm.Request) (*llm.Response, error) {
	s.Requests = append(s.Requests, snapshot(req))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.next >= len(s.Responses) {
		return nil, ErrExhausted
	}
	r := s.Responses[s.next]
	s.next++
	return r, nil
}

// Calls returns how many requests were made.
func (s *Scripted) Calls() int { return len(s.Requests) }

// Text is a final text response.
func Text(text string) *llm.Response {
	return &llm.Response{Text: text, StopReason: llm.StopEndTurn}
}

// ToolUse is a response requesting a single tool call with input marshalled to JSON.
func ToolUse(id, name string, input any) *llm.Response {
	b, err := json.Marshal(input)
	if err != nil {
		panic(fmt.Sprintf("llmtest: marshal tool input: %v", err))
	}
	return &llm.Response{
		ToolCalls:  []llm.ToolCall{{ID: id, Name: name, Input: b}},
		StopReason: llm.StopToolUse,
	}
}

// snapshot copies the slices of req so later appends by the caller don't alter history.
func snapshot(req llm.Request) llm.Request {
	out := req
	out.Messages = append(out.Messages[:0:0], req.Messages...)
	out.Rounds = append(out.Rounds[:0:0], req.Rounds...)
	out.Tools = append(out.Tools[:0:0], req.Tools...)
	return out
}
