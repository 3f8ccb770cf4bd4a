package windowing_test

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mzakany23/ncsh-agent/internal/windowing"
)

func userText(s string) anthropic.MessageParam {
	return anthropic.NewUserMessage(anthropic.NewTextBlock(s))
}

func assistantText(s string) anthropic.MessageParam {
	return anthropic.NewAssistantMessage(anthropic.NewTextBlock(s))
}

func toolUse(id, name string) anthropic.MessageParam {
	tu := anthropic.ToolUseBlockParam{ID: id, Name: name}
	return anthropic.NewAssistantMessage(anthropic.ContentBlockParamUnion{OfToolUse: &tu})
}

func toolResult(id string) anthropic.MessageParam {
	tr := anthropic.ToolResultBlockParam{ToolUseID: id}
	return anthropic.NewUserMessage(anthropic.ContentBlockParamUnion{OfToolResult: &tr})
}

func TestGroupBlocks_PairsToolUseWithResult(t *testing.T) {
	msgs := []anthropic.MessageParam{
		userText("question"),
		toolUse("a", "execute_sql"),
		toolResult("a"),
		assistantText("answer"),
	}
	groups := windowing.GroupBlocks(msgs)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(groups), groups)
	}
	if groups[1].Kind != windowing.GroupPair || groups[1].Start != 1 || groups[1].End != 3 {
		t.Fatalf("expected middle group to be the pair [1,3), got %+v", groups[1])
	}
}

func TestGroupBlocks_OrphanToolUseStaysSingleton(t *testing.T) {
	msgs := []anthropic.MessageParam{
		toolUse("a", "execute_sql"),
		userText("not a tool result"),
	}
	groups := windowing.GroupBlocks(msgs)
	if len(groups) != 2 {
		t.Fatalf("expected 2 singleton groups, got %d", len(groups))
	}
	for _, g := range groups {
		if g.Kind != windowing.GroupSingleton {
			t.Fatalf("expected singletons only, got %+v", g)
		}
	}
}

func TestGroupBlocks_MismatchedResultIDsNotPaired(t *testing.T) {
	msgs := []anthropic.MessageParam{
		toolUse("a", "execute_sql"),
		toolResult("b"),
	}
	groups := windowing.GroupBlocks(msgs)
	if len(groups) != 2 {
		t.Fatalf("mismatched ids must not pair, got %d groups", len(groups))
	}
}

func TestPrepareSendWindow_UnlimitedBudgetSendsAll(t *testing.T) {
	msgs := []anthropic.MessageParam{
		userText(strings.Repeat("x", 500)),
		assistantText(strings.Repeat("y", 500)),
	}
	window, stats := windowing.PrepareSendWindow(msgs, 0, windowing.HeuristicCounter{})
	if len(window) != 2 {
		t.Fatalf("expected full conversation, got %d messages", len(window))
	}
	if stats.SkippedGroups != 0 || stats.OverBudgetNewest {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_DropsOldestFirstAndKeepsPairsAtomic(t *testing.T) {
	msgs := []anthropic.MessageParam{
		userText(strings.Repeat("old", 40)), // well over the budget on its own
		toolUse("a", "get_schema"),
		toolResult("a"),
	}
	// Pair costs ~2*overhead = 8; budget fits the pair but not the old text.
	window, stats := windowing.PrepareSendWindow(msgs, 20, windowing.HeuristicCounter{})
	if len(window) != 2 {
		t.Fatalf("expected newest pair only, got %d messages", len(window))
	}
	if stats.IncludedGroups != 1 || stats.SkippedGroups != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPrepareSendWindow_NewestGroupOverBudget(t *testing.T) {
	msgs := []anthropic.MessageParam{
		userText(strings.Repeat("z", 100)),
	}
	window, stats := windowing.PrepareSendWindow(msgs, 10, windowing.HeuristicCounter{})
	if window != nil {
		t.Fatalf("expected empty window, got %d messages", len(window))
	}
	if !stats.OverBudgetNewest {
		t.Fatalf("expected OverBudgetNewest, stats=%+v", stats)
	}
}

func TestPrepareSendWindow_Empty(t *testing.T) {
	window, stats := windowing.PrepareSendWindow(nil, 100, windowing.HeuristicCounter{})
	if window != nil || stats.Total != 0 {
		t.Fatalf("unexpected result for empty conversation: %+v", stats)
	}
}

func TestHeuristicCounter_TextAndToolResult(t *testing.T) {
	c := windowing.HeuristicCounter{}
	if got := c.CountMessage(userText("abcd")); got != 8 { // 4 runes + overhead
		t.Fatalf("text message: got %d want 8", got)
	}
	if got := c.CountMessage(toolResult("a")); got != 4 { // overhead only
		t.Fatalf("empty tool result: got %d want 4", got)
	}
}
