package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// NewAnthropicClient returns a client using the API key from the env.
// Retries are capped so a flaky connection fails a turn instead of hanging it.
func NewAnthropicClient() *anthropic.Client {
	c := anthropic.NewClient(option.WithMaxRetries(2))
	return &c
}

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest
const APIVersion = "2023-06-01"
