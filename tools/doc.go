// Package tools defines the tool contract exposed to the model.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema.
//   - GenerateSchema[T](): derive JSON Schema from Go structs; ValidateInput checks raw args against it.
//   - generate_haiku: the one supported tool, producing a validated Haiku.
//   - Call/Decode: the closed set of tool invocations, one variant per known tool.
package tools
