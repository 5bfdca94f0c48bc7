package flow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petasbytes/haiku-agent/internal/errorsx"
	"github.com/petasbytes/haiku-agent/internal/llm"
	"github.com/petasbytes/haiku-agent/internal/metrics"
	"github.com/petasbytes/haiku-agent/internal/runner"
	"github.com/petasbytes/haiku-agent/internal/telemetry"
	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

// ErrNoUserMessage is returned when a turn has nothing new to answer.
var ErrNoUserMessage = errors.New("no new user message")

// Flow owns one conversation. It is not safe for concurrent turns.
type Flow struct {
	state  State
	runner *runner.Runner
	system string
	images []string
	log    zerolog.Logger
	events *telemetry.Emitter
}

type Option func(*Flow) error

// WithSystemPrompt replaces the base prompt; the image catalog is still appended.
func WithSystemPrompt(p string) Option {
	return func(f *Flow) error {
		f.system = p
		return nil
	}
}

// WithImageNames sets the catalog the model picks images from. An empty
// catalog disables the membership check.
func WithImageNames(names []string) Option {
	return func(f *Flow) error {
		f.images = slices.Clone(names)
		return nil
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(f *Flow) error {
		f.log = l
		return nil
	}
}

func WithEvents(e *telemetry.Emitter) Option {
	return func(f *Flow) error {
		if e != nil {
			f.events = e
		}
		return nil
	}
}

// WithMaxRounds caps tool rounds per turn. Without it the runner default applies.
func WithMaxRounds(n int) Option {
	return func(f *Flow) error {
		if n <= 0 {
			return fmt.Errorf("max rounds must be > 0, got %d", n)
		}
		f.runner.MaxRounds = n
		return nil
	}
}

// WithHistory seeds the conversation with prior messages.
func WithHistory(msgs ...memory.Message) Option {
	return func(f *Flow) error {
		c, err := memory.NewConversation(append(f.state.History.Messages(), msgs...)...)
		if err != nil {
			return err
		}
		f.state.History = *c
		return nil
	}
}

// New builds a Flow around client. The prompt defaults to DefaultSystemPrompt
// with no image catalog.
func New(client llm.Client, opts ...Option) (*Flow, error) {
	if client == nil {
		return nil, errors.New("flow: nil llm client")
	}
	f := &Flow{
		state:  State{ID: uuid.NewString()},
		system: DefaultSystemPrompt,
		log:    zerolog.Nop(),
		events: telemetry.Nop(),
	}
	f.runner = runner.New(client, tools.Registry(), f)
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("flow: %w", err)
		}
	}
	f.runner.Log = f.log
	f.runner.Events = f.events
	f.system = buildSystemPrompt(f.system, f.images)
	return f, nil
}

// State returns a snapshot of the conversation state.
func (f *Flow) State() State { return f.state }

// SystemPrompt is the full prompt sent with every turn.
func (f *Flow) SystemPrompt() string { return f.system }

// Chat runs one turn and always returns text. Failures are logged and rendered
// into the reply.
func (f *Flow) Chat(ctx context.Context, msg string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			f.state.Phase = PhaseIdle
			f.log.Error().Err(err).Msg("turn panicked")
			reply = errorReply(err)
		}
	}()
	res, err := f.Run(ctx, msg)
	if err != nil {
		f.log.Error().Err(err).Str("reason", string(errorsx.Reason(err))).Msg("turn failed")
		return errorReply(err)
	}
	return res.Text
}

// Run is Chat with explicit errors. A blank msg returns ErrNoUserMessage.
func (f *Flow) Run(ctx context.Context, msg string) (Result, error) {
	if strings.TrimSpace(msg) == "" {
		return Result{}, ErrNoUserMessage
	}
	return f.turn(ctx, []memory.Message{memory.User(msg)})
}

// Kickoff starts a turn from an input map with "messages" and optional "haiku".
// User messages already in the history are not sent again. Input errors are
// returned; turn errors are rendered into the reply as in Chat.
func (f *Flow) Kickoff(ctx context.Context, raw map[string]any) (string, error) {
	in, err := DecodeInputs(raw)
	if err != nil {
		return "", err
	}
	if in.Haiku != nil {
		f.state.Haiku = in.Haiku
	}

	var fresh []memory.Message
	for _, m := range in.Messages {
		if m.Role != memory.RoleUser || strings.TrimSpace(m.Content) == "" || f.state.History.Contains(m) || slices.Contains(fresh, m) {
			continue
		}
		fresh = append(fresh, m)
	}

	res, err := f.turn(ctx, fresh)
	if err != nil {
		f.log.Error().Err(err).Str("reason", string(errorsx.Reason(err))).Msg("turn failed")
		return errorReply(err), nil
	}
	return res.Text, nil
}

func (f *Flow) turn(ctx context.Context, users []memory.Message) (Result, error) {
	if len(users) == 0 {
		return Result{}, ErrNoUserMessage
	}
	ctx = telemetry.WithTurn(ctx, telemetry.NewTurn(f.state.ID))
	f.state.Phase = PhaseAwaitingResponse

	f.events.Emit(ctx, "turn_started", map[string]any{
		"history_len": f.state.History.Len(),
		"new_users":   len(users),
	})
	for _, u := range users {
		f.events.EmitLocalFeatures(ctx, u.Content)
	}
	f.log.Debug().Str("system_prompt", f.system).Msg("system prompt")

	req := llm.Request{
		System:   f.system,
		Messages: append(f.state.History.Messages(), users...),
	}
	res, err := f.runner.RunTurn(ctx, req)
	if err != nil {
		called := 0
		if res != nil {
			called = res.ToolCalls
		}
		f.state.Phase = PhaseIdle
		f.events.Emit(ctx, "turn_finished", map[string]any{
			"tool_calls": called,
			"error":      string(errorsx.Reason(err)),
		})
		return Result{ToolsCalled: called}, err
	}

	for _, u := range users {
		if err := f.state.History.Append(u); err != nil {
			return Result{}, err
		}
	}
	if err := f.state.History.Append(memory.Assistant(res.Text)); err != nil {
		return Result{}, err
	}
	f.state.Phase = PhaseFinalResponse

	f.log.Debug().Str("content", res.Text).Msg("response content")
	f.log.Info().Int("tools_called", res.ToolCalls).Msg("tools called during this interaction")
	f.events.Emit(ctx, "turn_finished", map[string]any{
		"tool_calls":    res.ToolCalls,
		"input_tokens":  res.Usage.InputTokens,
		"output_tokens": res.Usage.OutputTokens,
		"response":      metrics.CountFeatures(res.Text).AsMap(),
		"history_len":   f.state.History.Len(),
		"error":         nil,
	})
	return Result{Text: res.Text, ToolsCalled: res.ToolCalls}, nil
}

// GenerateHaiku stores h as the current haiku and returns its JSON for the model.
func (f *Flow) GenerateHaiku(ctx context.Context, h *tools.Haiku) (string, error) {
	f.state.Phase = PhaseToolExecution
	if len(f.images) > 0 {
		for _, name := range h.ImageNames {
			if !slices.Contains(f.images, name) {
				return "", errorsx.Wrap(fmt.Errorf("image %q is not in the catalog", name), errorsx.ReasonHaikuInvalid)
			}
		}
	}
	out, err := h.JSON()
	if err != nil {
		return "", err
	}
	f.state.Haiku = h
	f.events.Emit(ctx, "haiku_stored", map[string]any{
		"japanese_runes": metrics.LineRunes(h.Japanese),
		"english_runes":  metrics.LineRunes(h.English),
		"image_count":    len(h.ImageNames),
	})
	return out, nil
}

func errorReply(err error) string {
	return fmt.Sprintf("\n\nAn error occurred: %v\n\n", err)
}
