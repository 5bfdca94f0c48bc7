package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/haiku-agent/internal/llm"
	"github.com/petasbytes/haiku-agent/internal/provider"
	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

type capture struct {
	method string
	url    string
	header http.Header
	body   []byte
}

type fakeTransport struct {
	respStatus int
	respBody   []byte
	captured   *capture
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if f.captured != nil {
		f.captured.method = req.Method
		f.captured.url = req.URL.String()
		f.captured.header = req.Header.Clone()
		f.captured.body = b
	}
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newProvider(rt http.RoundTripper) *provider.Anthropic {
	cli := provider.NewAnthropicClient("test-key", "",
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithMaxRetries(0),
	)
	return provider.NewAnthropic(cli, "", 0)
}

type sentBody struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type      string          `json:"type"`
			Text      string          `json:"text,omitempty"`
			ID        string          `json:"id,omitempty"`
			Name      string          `json:"name,omitempty"`
			Input     json.RawMessage `json:"input,omitempty"`
			ToolUseID string          `json:"tool_use_id,omitempty"`
			IsError   bool            `json:"is_error,omitempty"`
		} `json:"content"`
	} `json:"messages"`
	Tools []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		InputSchema struct {
			Type       string                     `json:"type"`
			Properties map[string]json.RawMessage `json:"properties"`
			Required   []string                   `json:"required"`
		} `json:"input_schema"`
	} `json:"tools"`
}

func decodeSent(t *testing.T, c *capture) sentBody {
	t.Helper()
	if c.body == nil {
		t.Fatal("no request captured")
	}
	var sb sentBody
	if err := json.Unmarshal(c.body, &sb); err != nil {
		t.Fatalf("unmarshal body: %v\nbody=%s", err, string(c.body))
	}
	return sb
}

func TestAnthropic_SendsSystemHistoryAndTool(t *testing.T) {
	capReq := &capture{}
	fake := &fakeTransport{respStatus: 200, respBody: []byte(`{"content":[{"type":"text","text":"hello"}],"role":"assistant","stop_reason":"end_turn"}`), captured: capReq}
	p := newProvider(fake)

	resp, err := p.Call(context.Background(), llm.Request{
		System: "be brief",
		Messages: []memory.Message{
			memory.User("hi"),
			memory.Assistant("hello"),
			memory.User("a haiku please"),
		},
		Tools: tools.Registry(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Text != "hello" || resp.WantsTools() {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.StopReason != llm.StopEndTurn {
		t.Fatalf("stop reason: got %q", resp.StopReason)
	}

	if capReq.method != http.MethodPost || !strings.HasSuffix(capReq.url, "/v1/messages") {
		t.Fatalf("unexpected request: %s %s", capReq.method, capReq.url)
	}
	sb := decodeSent(t, capReq)
	if sb.Model != string(provider.DefaultModel) || sb.MaxTokens != provider.DefaultMaxTokens {
		t.Fatalf("defaults not applied: model=%q max_tokens=%d", sb.Model, sb.MaxTokens)
	}
	if len(sb.System) != 1 || sb.System[0].Text != "be brief" {
		t.Fatalf("system prompt not sent: %+v", sb.System)
	}
	if len(sb.Messages) != 3 || sb.Messages[0].Role != "user" || sb.Messages[1].Role != "assistant" || sb.Messages[2].Content[0].Text != "a haiku please" {
		t.Fatalf("history not replayed in order: %+v", sb.Messages)
	}
	if len(sb.Tools) != 1 || sb.Tools[0].Name != tools.GenerateHaikuName {
		t.Fatalf("tool not sent: %+v", sb.Tools)
	}
	for _, prop := range []string{"japanese", "english", "image_names"} {
		if _, ok := sb.Tools[0].InputSchema.Properties[prop]; !ok {
			t.Fatalf("schema missing %q: %+v", prop, sb.Tools[0].InputSchema)
		}
	}
}

func TestAnthropic_SystemRoleMessagesFoldIntoSystem(t *testing.T) {
	capReq := &capture{}
	fake := &fakeTransport{respStatus: 200, respBody: []byte(`{"content":[],"role":"assistant"}`), captured: capReq}
	p := newProvider(fake)

	_, err := p.Call(context.Background(), llm.Request{
		System:   "base",
		Messages: []memory.Message{memory.System("extra"), memory.User("hi"), memory.Assistant("")},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sb := decodeSent(t, capReq)
	if len(sb.System) != 1 || sb.System[0].Text != "base\n\nextra" {
		t.Fatalf("unexpected system: %+v", sb.System)
	}
	// system and empty messages are not sent as turns
	if len(sb.Messages) != 1 || sb.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", sb.Messages)
	}
	if len(sb.Tools) != 0 {
		t.Fatalf("no tools requested, got %d", len(sb.Tools))
	}
}

func TestAnthropic_ParsesToolUse(t *testing.T) {
	resp := `{
	"role": "assistant",
	"stop_reason": "tool_use",
	"usage": {"input_tokens": 12, "output_tokens": 34},
	"content": [
		{"type": "text", "text": "Let me write that."},
		{"type": "tool_use", "id": "toolu_1", "name": "generate_haiku", "input": {"japanese": ["a","b","c"], "english": ["d","e","f"], "image_names": ["x","y","z"]}}
	]
	}`
	p := newProvider(&fakeTransport{respStatus: 200, respBody: []byte(resp)})

	out, err := p.Call(context.Background(), llm.Request{Messages: []memory.Message{memory.User("haiku")}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.WantsTools() || len(out.ToolCalls) != 1 {
		t.Fatalf("expected one tool call, got %+v", out)
	}
	call := out.ToolCalls[0]
	if call.ID != "toolu_1" || call.Name != tools.GenerateHaikuName {
		t.Fatalf("unexpected call: %+v", call)
	}
	if _, err := tools.Decode(call.ID, call.Name, call.Input); err != nil {
		t.Fatalf("raw input should decode: %v (raw=%s)", err, call.Input)
	}
	if out.Text != "Let me write that." || out.StopReason != llm.StopToolUse {
		t.Fatalf("unexpected text/stop: %q %q", out.Text, out.StopReason)
	}
	if out.Usage.InputTokens != 12 || out.Usage.OutputTokens != 34 {
		t.Fatalf("usage not mapped: %+v", out.Usage)
	}
}

func TestAnthropic_ReplaysToolRoundsAdjacent(t *testing.T) {
	capReq := &capture{}
	fake := &fakeTransport{respStatus: 200, respBody: []byte(`{"content":[],"role":"assistant"}`), captured: capReq}
	p := newProvider(fake)

	_, err := p.Call(context.Background(), llm.Request{
		Messages: []memory.Message{memory.User("haiku")},
		Rounds: []llm.Round{{
			Calls:   []llm.ToolCall{{ID: "a", Name: tools.GenerateHaikuName, Input: json.RawMessage(`{"japanese":[]}`)}},
			Outputs: []llm.ToolOutput{{CallID: "a", Content: "bad input", IsError: true}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sb := decodeSent(t, capReq)
	if len(sb.Messages) != 3 {
		t.Fatalf("want user + tool pair, got %d messages", len(sb.Messages))
	}
	use, res := sb.Messages[1], sb.Messages[2]
	if use.Role != "assistant" || use.Content[0].Type != "tool_use" || use.Content[0].ID != "a" {
		t.Fatalf("unexpected tool_use message: %+v", use)
	}
	if res.Role != "user" || res.Content[0].Type != "tool_result" || res.Content[0].ToolUseID != "a" || !res.Content[0].IsError {
		t.Fatalf("unexpected tool_result message: %+v", res)
	}
}

func TestAnthropic_HTTPError_ReturnsError(t *testing.T) {
	p := newProvider(&fakeTransport{respStatus: 401, respBody: []byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)})
	_, err := p.Call(context.Background(), llm.Request{Messages: []memory.Message{memory.User("hi")}})
	if err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestAnthropic_PinsAPIVersionAndKey(t *testing.T) {
	c := &capture{}
	p := newProvider(&fakeTransport{respStatus: 200, respBody: []byte(`{"role":"assistant","content":[]}`), captured: c})
	if _, err := p.Call(context.Background(), llm.Request{Messages: []memory.Message{memory.User("hi")}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := c.header.Get("anthropic-version"); got != provider.APIVersion {
		t.Errorf("anthropic-version = %q, want %q", got, provider.APIVersion)
	}
	if got := c.header.Get("X-Api-Key"); got != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", got)
	}
	if c.method != http.MethodPost || !strings.HasSuffix(c.url, "/v1/messages") {
		t.Errorf("unexpected request %s %s", c.method, c.url)
	}
}
