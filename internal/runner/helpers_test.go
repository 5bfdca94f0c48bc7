package runner_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/haiku-agent/internal/telemetry"
	"github.com/petasbytes/haiku-agent/tools"
)

var haikuArgs = map[string]any{
	"japanese":    []string{"落ち葉舞う", "風にまかせて", "秋の道"},
	"english":     []string{"Falling leaves dance", "Trusting in the wind", "Autumn path"},
	"image_names": []string{"a.jpg", "b.jpg", "c.jpg"},
}

// recorder is a Handler that keeps every haiku it receives.
type recorder struct {
	got []*tools.Haiku
	err error
}

func (r *recorder) GenerateHaiku(_ context.Context, h *tools.Haiku) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.got = append(r.got, h)
	return h.JSON()
}

func openEvents(t *testing.T) (*telemetry.Emitter, string) {
	t.Helper()
	dir := t.TempDir()
	e, err := telemetry.Open(telemetry.Config{Enabled: true, Dir: dir})
	if err != nil {
		t.Fatalf("open telemetry: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e, dir
}

func readEvents(t *testing.T, dir string) []map[string]any {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer f.Close()

	var out []map[string]any
	s := bufio.NewScanner(f)
	for s.Scan() {
		txt := strings.TrimSpace(s.Text())
		if txt == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(txt), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", txt, err)
		}
		out = append(out, m)
	}
	return out
}

func eventsNamed(events []map[string]any, name string) []map[string]any {
	var out []map[string]any
	for _, ev := range events {
		if ev["event"] == name {
			out = append(out, ev)
		}
	}
	return out
}
