package tools

// Registry returns all tool definitions offered to the model.
func Registry() []ToolDefinition {
	return []ToolDefinition{GenerateHaikuDefinition}
}
