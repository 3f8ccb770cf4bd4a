package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
)

type BuildDatasetInput struct {
	Team       string `json:"team" jsonschema_description:"Team name to build a focused dataset for. Substring match against both home and away sides."`
	OutputFile string `json:"output_file,omitempty" jsonschema_description:"Output file name relative to the dataset directory, ending in .parquet. Defaults to <team-slug>_dataset.parquet."`
}

var BuildDatasetDefinition = ToolDefinition{
	Name:        "build_dataset",
	Description: "Extract every match involving a team into a new Parquet file inside the dataset directory. Paths outside that directory are rejected.",
	InputSchema: BuildDatasetInputSchema,
	Function:    BuildDataset,
}

var BuildDatasetInputSchema = GenerateSchema[BuildDatasetInput]()

func BuildDataset(input json.RawMessage) (string, error) {
	var in BuildDatasetInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.Team == "" {
		return "", fmt.Errorf("no team name provided")
	}

	name := in.OutputFile
	if name == "" {
		name = datasets.DefaultName(in.Team)
	}
	outPath, err := datasets.ResolveOutput(name)
	if err != nil {
		return "", err
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	rows, err := a.BuildTeamDataset(context.Background(), in.Team, outPath)
	if err != nil {
		return "", err
	}

	return marshalResult(map[string]any{
		"file": outPath,
		"rows": rows,
	})
}
