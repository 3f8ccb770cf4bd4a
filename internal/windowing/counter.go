package windowing

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// TokenCounter estimates input-token cost for messages or groups.
type TokenCounter interface {
	CountMessage(m anthropic.MessageParam) int
	CountGroup(g Group, all []anthropic.MessageParam) int
}

// HeuristicCounter is the default deterministic estimator:
//   - text blocks: rune count of the text
//   - tool_result blocks: rune count of nested text (or the string payload)
//   - every block adds a small fixed overhead for formatting
type HeuristicCounter struct{}

const blockOverhead = 4

func (HeuristicCounter) CountMessage(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		total += countBlock(blk)
	}
	return total
}

func (h HeuristicCounter) CountGroup(g Group, all []anthropic.MessageParam) int {
	total := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		total += h.CountMessage(all[i])
	}
	return total
}

func countBlock(blk anthropic.ContentBlockParamUnion) int {
	if tb := blk.OfText; tb != nil {
		return utf8.RuneCountInString(tb.Text) + blockOverhead
	}

	if tr := blk.OfToolResult; tr != nil {
		if nested, ok := any(tr.Content).([]anthropic.ToolResultBlockParamContentUnion); ok {
			subtotal := 0
			for _, nb := range nested {
				if nt := nb.OfText; nt != nil {
					subtotal += utf8.RuneCountInString(nt.Text)
				}
			}
			return subtotal + blockOverhead
		}
		if s, ok := any(tr.Content).(string); ok {
			return utf8.RuneCountInString(s) + blockOverhead
		}
		return blockOverhead
	}

	// tool_use, thinking, images: overhead only in this minimal heuristic.
	return blockOverhead
}
