package telemetry

import (
	"context"

	"github.com/mzakany23/ncsh-agent/internal/metrics"
)

// EmitQuestionFeatures records local text features of a user question.
// No-op unless observation is enabled.
func EmitQuestionFeatures(ctx context.Context, question string) {
	if !ObserveEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := metrics.CountFeatures(question)
	Emit("question_features", map[string]any{
		"turn_id": turnID,
		"question": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}
