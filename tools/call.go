package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petasbytes/haiku-agent/internal/errorsx"
)

var ErrUnknownTool = errors.New("tool not found")

// Call is a decoded tool invocation. The variants are closed: one per tool in Registry.
type Call interface {
	CallID() string
	ToolName() string
	isCall()
}

// GenerateHaikuCall carries an already validated Haiku.
type GenerateHaikuCall struct {
	ID    string
	Haiku *Haiku
}

func (c GenerateHaikuCall) CallID() string   { return c.ID }
func (c GenerateHaikuCall) ToolName() string { return GenerateHaikuName }
func (GenerateHaikuCall) isCall()            {}

// Decode turns a raw tool_use into its Call variant.
// Argument errors are reason-coded so callers can report them back to the model.
func Decode(id, name string, input json.RawMessage) (Call, error) {
	switch name {
	case GenerateHaikuName:
		if err := ValidateInput(GenerateHaikuInputSchema, input); err != nil {
			return nil, errorsx.Wrap(err, errorsx.ReasonToolArgs)
		}
		var in Haiku
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, errorsx.Wrap(fmt.Errorf("decode %s input: %w", name, err), errorsx.ReasonToolArgs)
		}
		h, err := NewHaiku(in.Japanese, in.English, in.ImageNames)
		if err != nil {
			return nil, errorsx.Wrap(err, errorsx.ReasonHaikuInvalid)
		}
		return GenerateHaikuCall{ID: id, Haiku: h}, nil
	default:
		return nil, errorsx.Wrap(fmt.Errorf("%w: %q", ErrUnknownTool, name), errorsx.ReasonToolUnknown)
	}
}
