package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonLLMCall    ReasonCode = "llm_call"
	ReasonToolRounds ReasonCode = "tool_rounds"

	ReasonToolUnknown  ReasonCode = "tool_unknown"
	ReasonToolArgs     ReasonCode = "tool_args"
	ReasonHaikuInvalid ReasonCode = "haiku_invalid"

	ReasonConfig ReasonCode = "config"
)
