package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/haiku-agent/internal/llm"
	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest
const DefaultMaxTokens = 1024

// APIVersion is pinned on every request.
const APIVersion = "2023-06-01"

// NewAnthropicClient returns a client. An empty apiKey leaves the SDK to read
// ANTHROPIC_API_KEY from the env; an empty baseURL keeps the SDK default.
func NewAnthropicClient(apiKey, baseURL string, opts ...option.RequestOption) *anthropic.Client {
	all := make([]option.RequestOption, 0, len(opts)+3)
	all = append(all, option.WithHeader("anthropic-version", APIVersion))
	if apiKey != "" {
		all = append(all, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}
	all = append(all, opts...)
	c := anthropic.NewClient(all...)
	return &c
}

// Anthropic implements llm.Client on the Messages API.
type Anthropic struct {
	Client    *anthropic.Client
	Model     anthropic.Model
	MaxTokens int64
}

func NewAnthropic(client *anthropic.Client, model string, maxTokens int64) *Anthropic {
	m := anthropic.Model(model)
	if model == "" {
		m = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Anthropic{Client: client, Model: m, MaxTokens: maxTokens}
}

func (a *Anthropic) Name() string { return "anthropic (" + string(a.Model) + ")" }

// Call sends req as a single Messages.New request.
func (a *Anthropic) Call(ctx context.Context, req llm.Request) (*llm.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     a.Model,
		MaxTokens: a.MaxTokens,
		Messages:  buildMessages(req),
	}
	if system := systemText(req); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(req.Tools) > 0 {
		params.Tools = anthropicTools(req.Tools)
	}

	msg, err := a.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromMessage(msg), nil
}

func anthropicTools(defs []tools.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, t := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: t.InputSchema.Properties,
				Required:   t.InputSchema.Required,
			},
		}})
	}
	return out
}

// systemText joins the request prompt with any system-role history messages.
func systemText(req llm.Request) string {
	parts := make([]string, 0, 1)
	if s := strings.TrimSpace(req.System); s != "" {
		parts = append(parts, s)
	}
	for _, m := range req.Messages {
		if m.Role == memory.RoleSystem && strings.TrimSpace(m.Content) != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// buildMessages replays the text history, then each tool round as an
// assistant(tool_use) message followed by its user(tool_result) message.
func buildMessages(req llm.Request) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(req.Messages)+2*len(req.Rounds))
	for _, m := range req.Messages {
		// The API rejects empty text blocks.
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case memory.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case memory.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	for _, r := range req.Rounds {
		uses := make([]anthropic.ContentBlockParamUnion, 0, len(r.Calls)+1)
		if r.Text != "" {
			uses = append(uses, anthropic.NewTextBlock(r.Text))
		}
		for _, c := range r.Calls {
			uses = append(uses, anthropic.NewToolUseBlock(c.ID, c.Input, c.Name))
		}
		results := make([]anthropic.ContentBlockParamUnion, 0, len(r.Outputs))
		for _, o := range r.Outputs {
			results = append(results, anthropic.NewToolResultBlock(o.CallID, o.Content, o.IsError))
		}
		out = append(out, anthropic.NewAssistantMessage(uses...), anthropic.NewUserMessage(results...))
	}
	return out
}

func fromMessage(msg *anthropic.Message) *llm.Response {
	resp := &llm.Response{
		StopReason: llm.StopReason(msg.StopReason),
		Usage: llm.Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	var texts []string
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				texts = append(texts, v.Text)
			}
		case anthropic.ToolUseBlock:
			// Pass raw JSON input through; decoding happens in tools.Decode.
			resp.ToolCalls = append(resp.ToolCalls, llm.ToolCall{
				ID:    v.ID,
				Name:  v.Name,
				Input: json.RawMessage(v.JSON.Input.Raw()),
			})
		}
	}
	resp.Text = strings.Join(texts, "\n")
	return resp
}
