// Package runner coordinates message exchange with the Anthropic Messages API
// and dispatches tool calls.
//
// Invariant:
//   - tool_use and the corresponding tool_result are kept adjacent within a
//     turn so the windowing layer can treat them as one atomic group.
//
// Flow:
//
//	user(question) -> assistant(tool_use) -> user(tool_result) -> ... -> assistant(text)
package runner
