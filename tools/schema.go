package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// ToolDefinition describes a tool the model may call.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema Schema
}

// Schema is the object schema of a tool's input: its properties and required keys.
type Schema struct {
	Properties any
	Required   []string
}

// GenerateSchema reflects T into an inlined object schema.
func GenerateSchema[T any]() Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	var v T
	s := reflector.Reflect(v)
	return Schema{Properties: s.Properties, Required: s.Required}
}

// Document returns the schema as a standalone JSON Schema object.
func (s Schema) Document() map[string]any {
	doc := map[string]any{"type": "object"}
	if s.Properties != nil {
		doc["properties"] = s.Properties
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

// ValidateInput checks raw tool arguments against s.
func ValidateInput(s Schema, input json.RawMessage) error {
	doc, err := json.Marshal(s.Document())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(doc), gojsonschema.NewBytesLoader(input))
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}
