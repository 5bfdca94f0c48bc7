package tools

import (
	"encoding/json"
	"fmt"
)

// HaikuLines is the required length of every Haiku field.
const HaikuLines = 3

// Haiku is the structured result of the generate_haiku tool.
type Haiku struct {
	Japanese   []string `json:"japanese" mapstructure:"japanese" jsonschema:"minItems=3,maxItems=3" jsonschema_description:"An array of three lines of the haiku in Japanese"`
	English    []string `json:"english" mapstructure:"english" jsonschema:"minItems=3,maxItems=3" jsonschema_description:"An array of three lines of the haiku in English"`
	ImageNames []string `json:"image_names" mapstructure:"image_names" jsonschema:"minItems=3,maxItems=3" jsonschema_description:"Names of 3 relevant images from the provided list"`
}

// NewHaiku copies the given lines into a Haiku, failing unless each has exactly three entries.
func NewHaiku(japanese, english, imageNames []string) (*Haiku, error) {
	h := &Haiku{
		Japanese:   append([]string(nil), japanese...),
		English:    append([]string(nil), english...),
		ImageNames: append([]string(nil), imageNames...),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate enforces the three-entry invariant on every field.
func (h *Haiku) Validate() error {
	fields := []struct {
		name  string
		lines []string
	}{
		{"japanese", h.Japanese},
		{"english", h.English},
		{"image_names", h.ImageNames},
	}
	for _, f := range fields {
		if len(f.lines) != HaikuLines {
			return fmt.Errorf("haiku: %s must have exactly %d entries, got %d", f.name, HaikuLines, len(f.lines))
		}
	}
	return nil
}

// JSON renders the haiku the way it is returned to the model as a tool result.
func (h *Haiku) JSON() (string, error) {
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Equal reports whether both haikus carry the same lines in the same order.
func (h *Haiku) Equal(o *Haiku) bool {
	if h == nil || o == nil {
		return h == o
	}
	return equalLines(h.Japanese, o.Japanese) &&
		equalLines(h.English, o.English) &&
		equalLines(h.ImageNames, o.ImageNames)
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
