package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"

	"github.com/mzakany23/ncsh-agent/internal/config"
	"github.com/mzakany23/ncsh-agent/internal/telemetry"
	"github.com/mzakany23/ncsh-agent/internal/windowing"
	"github.com/mzakany23/ncsh-agent/tools"
)

var assistantLabel = color.New(color.FgYellow).SprintFunc()

type Runner struct {
	Client *anthropic.Client
	Tools  []tools.ToolDefinition

	Model       anthropic.Model
	MaxTokens   int64
	MaxTurns    int
	TokenBudget int
	System      string

	// Quiet suppresses per-block printing; RunQuestion's return value still
	// carries the assistant text.
	Quiet bool
}

func New(client *anthropic.Client, toolDefs []tools.ToolDefinition, cfg config.Config) *Runner {
	return &Runner{
		Client:      client,
		Tools:       toolDefs,
		Model:       anthropic.Model(cfg.Model),
		MaxTokens:   cfg.MaxTokens,
		MaxTurns:    cfg.MaxTurns,
		TokenBudget: cfg.TokenBudget,
	}
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// RunOneStep sends the conversation and either prints text or returns tool
// results to be appended by the caller.
func (r *Runner) RunOneStep(ctx context.Context, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	// Prepare pair-safe, budgeted window. TokenBudget <= 0 sends everything.
	counter := windowing.HeuristicCounter{}
	window, stats := windowing.PrepareSendWindow(conv, r.TokenBudget, counter)

	// Get turnID from context if present, else generate once for this call.
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = fmt.Sprintf("turn-%d", time.Now().UnixNano())
	}
	ctx = telemetry.WithTurnID(ctx, turnID)

	telemetry.Emit("window_prepared", map[string]any{
		"turn_id":            turnID,
		"model":              string(r.Model),
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included_groups":    stats.IncludedGroups,
		"skipped_groups":     stats.SkippedGroups,
		"over_budget_newest": stats.OverBudgetNewest,
	})

	if os.Getenv("NCSH_VERBOSE") == "1" {
		fmt.Printf(
			"window: model=%s budget=%d est_total=%d groups_in=%d groups_skip=%d newest_over=%t\n",
			string(r.Model), stats.Budget, stats.Total, stats.IncludedGroups, stats.SkippedGroups, stats.OverBudgetNewest,
		)
	}

	if stats.OverBudgetNewest {
		return nil, nil, fmt.Errorf("windowing: newest group exceeds NCSH_TOKEN_BUDGET; raise the budget or trim tool output")
	}

	params := anthropic.MessageNewParams{
		Model:     r.Model,
		MaxTokens: r.MaxTokens,
		Messages:  window,
		Tools:     r.anthropicTools(),
	}
	if r.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.System}}
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	toolResults := []anthropic.ContentBlockParamUnion{}
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if !r.Quiet {
				fmt.Printf("%s: %s\n", assistantLabel("ncsh"), v.Text)
			}
		case anthropic.ToolUseBlock:
			input := json.RawMessage(v.JSON.Input.Raw())
			res := r.execTool(ctx, v.ID, v.Name, input)
			toolResults = append(toolResults, res)
		}
	}
	return msg, toolResults, nil
}

// RunQuestion drives a full batch turn: initial message in, tool loop until
// the model calls complete_task or stops asking for tools. Returns the
// assistant's accumulated text.
func (r *Runner) RunQuestion(ctx context.Context, initial string) (string, error) {
	telemetry.EmitQuestionFeatures(ctx, initial)

	conv := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(initial)),
	}

	maxTurns := r.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 10
	}

	var answer strings.Builder
	for turn := 0; turn < maxTurns; turn++ {
		msg, toolResults, err := r.RunOneStep(ctx, conv)
		if err != nil {
			return answer.String(), err
		}
		conv = append(conv, msg.ToParam())

		done := false
		for _, block := range msg.Content {
			switch v := block.AsAny().(type) {
			case anthropic.TextBlock:
				if v.Text != "" {
					if answer.Len() > 0 {
						answer.WriteString("\n")
					}
					answer.WriteString(v.Text)
				}
			case anthropic.ToolUseBlock:
				if tools.IsTerminal(v.Name) {
					done = true
				}
			}
		}

		if len(toolResults) == 0 {
			return answer.String(), nil
		}
		conv = append(conv, anthropic.NewUserMessage(toolResults...))
		if done {
			return answer.String(), nil
		}
	}
	return answer.String(), fmt.Errorf("no answer after %d turns", maxTurns)
}

func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var def *tools.ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			def = &r.Tools[i]
			break
		}
	}

	turnID, _ := telemetry.TurnIDFromContext(ctx)

	emit := func(durationMs int64, inputSize int, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": durationMs,
			"input_size":  inputSize,
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()
	inSize := len(input)

	if def == nil {
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool not found")
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	resp, err := def.Function(input)
	if err != nil {
		// Keep telemetry generic; the detailed message goes back to the model.
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool error")
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	outSize := len(resp)
	emit(time.Since(start).Milliseconds(), inSize, outSize, "")
	return anthropic.NewToolResultBlock(id, resp, false)
}
