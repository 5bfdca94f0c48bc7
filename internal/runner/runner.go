package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petasbytes/haiku-agent/internal/errorsx"
	"github.com/petasbytes/haiku-agent/internal/llm"
	"github.com/petasbytes/haiku-agent/internal/telemetry"
	"github.com/petasbytes/haiku-agent/tools"
)

// DefaultMaxRounds bounds tool rounds when Runner.MaxRounds is unset.
const DefaultMaxRounds = 4

// Handler executes decoded tool calls, one method per tools.Call variant.
type Handler interface {
	GenerateHaiku(ctx context.Context, h *tools.Haiku) (string, error)
}

type Runner struct {
	Client    llm.Client
	Tools     []tools.ToolDefinition
	Handler   Handler
	MaxRounds int // 0 means DefaultMaxRounds
	Events    *telemetry.Emitter
	Log       zerolog.Logger
}

func New(client llm.Client, toolDefs []tools.ToolDefinition, h Handler) *Runner {
	return &Runner{
		Client:  client,
		Tools:   toolDefs,
		Handler: h,
		Events:  telemetry.Nop(),
		Log:     zerolog.Nop(),
	}
}

// Result is the outcome of a full turn.
type Result struct {
	Text      string
	Rounds    []llm.Round
	ToolCalls int
	Usage     llm.Usage
}

// RunOneStep sends req with the runner's tools attached and executes any tools
// the model asked for. Outputs are returned in call order for the caller to
// append as a Round. Once req already holds MaxRounds rounds, a further tool
// request is not executed and a tool_rounds error is returned with the response.
func (r *Runner) RunOneStep(ctx context.Context, req llm.Request) (*llm.Response, []llm.ToolOutput, error) {
	req.Tools = r.Tools
	resp, err := r.call(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if !resp.WantsTools() {
		return resp, nil, nil
	}
	if len(req.Rounds) >= r.maxRounds() {
		return resp, nil, errorsx.Wrap(fmt.Errorf("tool loop exceeded %d rounds", r.maxRounds()), errorsx.ReasonToolRounds)
	}
	return resp, r.execTools(ctx, resp.ToolCalls), nil
}

// RunTurn loops RunOneStep until the model answers without requesting tools.
// Rounds are appended to a copy; the caller's slice is untouched.
func (r *Runner) RunTurn(ctx context.Context, req llm.Request) (*Result, error) {
	req.Rounds = append([]llm.Round(nil), req.Rounds...)
	res := &Result{}

	for {
		resp, outputs, err := r.RunOneStep(ctx, req)
		if resp != nil {
			res.Usage.InputTokens += resp.Usage.InputTokens
			res.Usage.OutputTokens += resp.Usage.OutputTokens
		}
		if err != nil {
			res.Rounds = req.Rounds
			return res, err
		}
		if !resp.WantsTools() {
			res.Text = resp.Text
			res.Rounds = req.Rounds
			return res, nil
		}

		res.ToolCalls += len(resp.ToolCalls)
		req.Rounds = append(req.Rounds, llm.Round{
			Text:    resp.Text,
			Calls:   resp.ToolCalls,
			Outputs: outputs,
		})
	}
}

func (r *Runner) maxRounds() int {
	if r.MaxRounds <= 0 {
		return DefaultMaxRounds
	}
	return r.MaxRounds
}

func (r *Runner) call(ctx context.Context, req llm.Request) (*llm.Response, error) {
	start := time.Now()
	resp, err := r.Client.Call(ctx, req)
	fields := map[string]any{
		"messages":    len(req.Messages),
		"rounds":      len(req.Rounds),
		"tools":       len(req.Tools),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = string(errorsx.ReasonLLMCall)
		r.Events.Emit(ctx, "llm_call", fields)
		return nil, errorsx.Wrap(fmt.Errorf("llm call: %w", err), errorsx.ReasonLLMCall)
	}
	if resp == nil {
		return nil, errorsx.Wrap(errors.New("llm call: empty response"), errorsx.ReasonLLMCall)
	}
	fields["stop_reason"] = string(resp.StopReason)
	fields["tool_calls"] = len(resp.ToolCalls)
	fields["input_tokens"] = resp.Usage.InputTokens
	fields["output_tokens"] = resp.Usage.OutputTokens
	fields["error"] = nil
	r.Events.Emit(ctx, "llm_call", fields)

	r.Log.Debug().
		Int("rounds", len(req.Rounds)).
		Int("tool_calls", len(resp.ToolCalls)).
		Str("stop_reason", string(resp.StopReason)).
		Msg("llm responded")
	return resp, nil
}

func (r *Runner) execTools(ctx context.Context, calls []llm.ToolCall) []llm.ToolOutput {
	out := make([]llm.ToolOutput, 0, len(calls))
	for _, c := range calls {
		out = append(out, r.execTool(ctx, c))
	}
	return out
}

func (r *Runner) execTool(ctx context.Context, call llm.ToolCall) llm.ToolOutput {
	start := time.Now()

	resp, err := r.dispatch(ctx, call)

	fields := map[string]any{
		"tool_name":   call.Name,
		"duration_ms": time.Since(start).Milliseconds(),
		"input_size":  len(call.Input),
		"output_size": len(resp),
		"error":       nil,
	}
	if err != nil {
		// Reason code only; the detailed message goes back to the model.
		fields["error"] = string(errorsx.Reason(err))
		fields["output_size"] = 0
	}
	r.Events.Emit(ctx, "tool_exec", fields)

	if err != nil {
		r.Log.Warn().Err(err).Str("tool", call.Name).Str("reason", string(errorsx.Reason(err))).Msg("tool call failed")
		return llm.ToolOutput{CallID: call.ID, Content: err.Error(), IsError: true}
	}
	return llm.ToolOutput{CallID: call.ID, Content: resp}
}

func (r *Runner) dispatch(ctx context.Context, call llm.ToolCall) (string, error) {
	if !r.offered(call.Name) {
		return "", errorsx.Wrap(fmt.Errorf("%w: %q", tools.ErrUnknownTool, call.Name), errorsx.ReasonToolUnknown)
	}
	decoded, err := tools.Decode(call.ID, call.Name, call.Input)
	if err != nil {
		return "", err
	}
	if r.Handler == nil {
		return "", errorsx.Wrap(errors.New("no tool handler configured"), errorsx.ReasonToolUnknown)
	}
	switch c := decoded.(type) {
	case tools.GenerateHaikuCall:
		return r.Handler.GenerateHaiku(ctx, c.Haiku)
	default:
		return "", errorsx.Wrap(fmt.Errorf("%w: %q", tools.ErrUnknownTool, call.Name), errorsx.ReasonToolUnknown)
	}
}

func (r *Runner) offered(name string) bool {
	for _, t := range r.Tools {
		if t.Name == name {
			return true
		}
	}
	return false
}
