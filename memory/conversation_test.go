package memory_test

import (
	"testing"

	"github.com/petasbytes/haiku-agent/memory"
)

func TestConversation_AppendPreservesOrder(t *testing.T) {
	var c memory.Conversation
	in := []memory.Message{
		memory.User("first"),
		memory.User("second"),
		memory.Assistant("reply"),
	}
	for _, m := range in {
		if err := c.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	out := c.Messages()
	if len(out) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("mismatch at %d: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestConversation_InvalidRole_ReturnsError(t *testing.T) {
	var c memory.Conversation
	if err := c.Append(memory.Message{Role: "tool", Content: "x"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if c.Len() != 0 {
		t.Fatalf("rejected message must not be stored, len=%d", c.Len())
	}
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	c, err := memory.NewConversation(memory.User("hi"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out := c.Messages()
	out[0].Content = "mutated"

	if got := c.Messages()[0].Content; got != "hi" {
		t.Fatalf("transcript mutated through returned slice: %q", got)
	}
}

func TestConversation_Contains(t *testing.T) {
	c, _ := memory.NewConversation(memory.User("hi"), memory.Assistant("hello"))
	if !c.Contains(memory.User("hi")) {
		t.Fatal("expected user message to be found")
	}
	if c.Contains(memory.Assistant("hi")) {
		t.Fatal("role must be part of identity")
	}
}

func TestConversation_ZeroValueEmpty(t *testing.T) {
	var c memory.Conversation
	if c.Len() != 0 {
		t.Fatalf("expected empty conversation, len=%d", c.Len())
	}
	if got := c.Messages(); len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

type holder struct{ history memory.Conversation }

func (h holder) snapshot() holder { return h }

func TestConversation_ReadMethodsOnValueCopy(t *testing.T) {
	h := holder{}
	if err := h.history.Append(memory.User("hi")); err != nil {
		t.Fatalf("append: %v", err)
	}

	// read methods must be callable on a non-addressable returned value
	if n := h.snapshot().history.Len(); n != 1 {
		t.Fatalf("len on copy = %d, want 1", n)
	}
	if got := h.snapshot().history.Messages(); len(got) != 1 || got[0] != memory.User("hi") {
		t.Fatalf("messages on copy = %#v", got)
	}
	if !h.snapshot().history.Contains(memory.User("hi")) {
		t.Fatal("contains on copy should find the message")
	}
}

func TestNewConversation_RejectsInvalidRole(t *testing.T) {
	if _, err := memory.NewConversation(memory.User("ok"), memory.Message{Role: "tool"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
