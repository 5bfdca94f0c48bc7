package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDir is used when Config.Dir is empty.
const DefaultDir = ".agent"

const eventsFile = "events.jsonl"

type Config struct {
	Enabled bool
	Dir     string
}

// Emitter appends events to a JSONL file. A nil or disabled Emitter drops everything.
type Emitter struct {
	log  zerolog.Logger
	file *os.File
}

// Open prepares the events file when cfg.Enabled; otherwise it returns a disabled Emitter.
func Open(cfg Config) (*Emitter, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, eventsFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{log: zerolog.New(f), file: f}, nil
}

func Nop() *Emitter { return &Emitter{log: zerolog.Nop()} }

func (e *Emitter) Enabled() bool { return e != nil && e.file != nil }

// Path returns the events file path, or "" when disabled.
func (e *Emitter) Path() string {
	if !e.Enabled() {
		return ""
	}
	return e.file.Name()
}

// Emit writes one event line. Callers' maps are not mutated.
func (e *Emitter) Emit(ctx context.Context, name string, fields map[string]any) {
	if !e.Enabled() {
		return
	}
	ev := e.log.Log().
		Str("time", time.Now().UTC().Format(time.RFC3339Nano)).
		Str("event", name)
	if t, ok := TurnFromContext(ctx); ok {
		ev = ev.Str("turn_id", t.ID)
		if t.ConversationID != "" {
			ev = ev.Str("conversation_id", t.ConversationID)
		}
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Send()
}

func (e *Emitter) Close() error {
	if !e.Enabled() {
		return nil
	}
	return e.file.Close()
}
