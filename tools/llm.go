package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mzakany23/ncsh-agent/internal/provider"
)

// newLLMClient is a hook so tests can intercept the one-shot helper calls
// without a network round trip.
var newLLMClient = provider.NewAnthropicClient

// askModel runs a single tool-free exchange and returns the concatenated
// text blocks. query_to_sql and summarize_results use it for their sub-calls.
func askModel(ctx context.Context, system, user string) (string, error) {
	client := newLLMClient()
	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     provider.DefaultModel,
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(user))},
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return strings.Join(parts, "\n"), nil
}
