// Package provider adapts model backends to llm.Client.
//
// Anthropic maps the neutral request onto the Messages API:
//
//	system prompt -> params.System
//	history       -> user/assistant text messages
//	tool rounds   -> assistant(tool_use) + user(tool_result), kept adjacent
package provider
