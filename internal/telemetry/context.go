package telemetry

import (
	"context"

	"github.com/google/uuid"
)

// Turn identifies one user->assistant exchange within a conversation.
type Turn struct {
	ID             string
	ConversationID string
}

type turnKey struct{}

// NewTurn returns a Turn with a fresh random ID.
func NewTurn(conversationID string) Turn {
	return Turn{ID: uuid.NewString(), ConversationID: conversationID}
}

// WithTurn returns a child context carrying t.
func WithTurn(ctx context.Context, t Turn) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, turnKey{}, t)
}

// TurnFromContext returns the Turn in ctx; ok is false when missing or without an ID.
func TurnFromContext(ctx context.Context) (Turn, bool) {
	if ctx == nil {
		return Turn{}, false
	}
	t, ok := ctx.Value(turnKey{}).(Turn)
	if !ok || t.ID == "" {
		return Turn{}, false
	}
	return t, true
}
