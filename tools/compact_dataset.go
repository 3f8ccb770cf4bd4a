package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mzakany23/ncsh-agent/internal/metrics"
	"github.com/mzakany23/ncsh-agent/internal/render"
	"github.com/mzakany23/ncsh-agent/internal/telemetry"
)

type CompactDatasetInput struct {
	Format string `json:"format,omitempty" jsonschema_description:"Output format: compact (default), table, or csv. Compact is the cheapest representation to reason over."`
}

var CompactDatasetDefinition = ToolDefinition{
	Name:        "compact_dataset",
	Description: "Render the entire dataset in a token-efficient text format. Use when a question needs a full pass over the data rather than an aggregate query.",
	InputSchema: CompactDatasetInputSchema,
	Function:    CompactDataset,
}

var CompactDatasetInputSchema = GenerateSchema[CompactDatasetInput]()

func CompactDataset(input json.RawMessage) (string, error) {
	var in CompactDatasetInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	format := in.Format
	if format == "" {
		format = render.FormatCompact
	}
	if !render.ValidFormat(format) {
		return "", fmt.Errorf("unknown format %q: want compact, table or csv", format)
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	games, err := a.AllGames(context.Background())
	if err != nil {
		return "", err
	}

	out, err := render.Games(games, format)
	if err != nil {
		return "", err
	}

	// Savings are measured against the JSON the rows would otherwise occupy.
	baseline, _ := json.Marshal(games)
	baseTokens := metrics.EstimateTokens(string(baseline))
	outTokens := metrics.EstimateTokens(out)
	telemetry.Emit("dataset_compacted", map[string]any{
		"format":          format,
		"rows":            len(games),
		"baseline_tokens": baseTokens,
		"output_tokens":   outTokens,
	})

	return out, nil
}
