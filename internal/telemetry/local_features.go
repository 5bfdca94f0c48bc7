package telemetry

import (
	"context"

	"github.com/petasbytes/haiku-agent/internal/metrics"
)

// EmitLocalFeatures records size features of the user's text without the text itself.
func (e *Emitter) EmitLocalFeatures(ctx context.Context, user string) {
	if !e.Enabled() {
		return
	}
	e.Emit(ctx, "local_features", map[string]any{
		"features_version": "1",
		"user":             metrics.CountFeatures(user).AsMap(),
	})
}
