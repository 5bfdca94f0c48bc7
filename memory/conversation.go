package memory

import "fmt"

// Role identifies the speaker of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single text turn in the transcript.
type Message struct {
	Role    Role   `json:"role" mapstructure:"role"`
	Content string `json:"content" mapstructure:"content"`
}

func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }
func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }

// Conversation is an append-only, ordered list of messages.
// The zero value is an empty conversation ready to use. Only Append needs a
// pointer; the read methods work on copies such as a returned state snapshot.
type Conversation struct {
	msgs []Message
}

// NewConversation seeds a conversation with prior messages, in order.
func NewConversation(prior ...Message) (*Conversation, error) {
	c := &Conversation{}
	for _, m := range prior {
		if err := c.Append(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append adds m to the end of the transcript.
func (c *Conversation) Append(m Message) error {
	if !m.Role.Valid() {
		return fmt.Errorf("memory: invalid role %q", m.Role)
	}
	c.msgs = append(c.msgs, m)
	return nil
}

// Contains reports whether an identical message is already in the transcript.
func (c Conversation) Contains(m Message) bool {
	for _, x := range c.msgs {
		if x == m {
			return true
		}
	}
	return false
}

// Messages returns a copy of the transcript, oldest first.
func (c Conversation) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c Conversation) Len() int { return len(c.msgs) }
