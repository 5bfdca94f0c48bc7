package flow

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/petasbytes/haiku-agent/memory"
	"github.com/petasbytes/haiku-agent/tools"
)

// Inputs is the initial state handed to Kickoff.
type Inputs struct {
	Messages []memory.Message `mapstructure:"messages"`
	Haiku    *tools.Haiku     `mapstructure:"haiku"`
}

// DecodeInputs converts a loosely typed input map (as produced by JSON decoding
// or a flow framework) into Inputs. Unknown keys are ignored.
func DecodeInputs(raw map[string]any) (Inputs, error) {
	var in Inputs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &in,
		TagName: "mapstructure",
	})
	if err != nil {
		return Inputs{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Inputs{}, fmt.Errorf("decode inputs: %w", err)
	}
	for i, m := range in.Messages {
		if !m.Role.Valid() {
			return Inputs{}, fmt.Errorf("decode inputs: messages[%d]: invalid role %q", i, m.Role)
		}
	}
	if in.Haiku != nil {
		h, err := tools.NewHaiku(in.Haiku.Japanese, in.Haiku.English, in.Haiku.ImageNames)
		if err != nil {
			return Inputs{}, fmt.Errorf("decode inputs: haiku: %w", err)
		}
		in.Haiku = h
	}
	return in, nil
}
