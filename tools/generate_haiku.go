package tools

const GenerateHaikuName = "generate_haiku"

var GenerateHaikuDefinition = ToolDefinition{
	Name:        GenerateHaikuName,
	Description: "Generate a haiku in Japanese and its English translation",
	InputSchema: GenerateHaikuInputSchema,
}

var GenerateHaikuInputSchema = GenerateSchema[Haiku]()
