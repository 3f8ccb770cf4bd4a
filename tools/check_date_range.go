package tools

import (
	"context"
	"encoding/json"

	"github.com/mzakany23/ncsh-agent/internal/duckdb"
)

type CheckDateRangeInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema_description:"Optional inclusive lower bound (YYYY-MM-DD) to probe for data."`
	EndDate   string `json:"end_date,omitempty" jsonschema_description:"Optional inclusive upper bound (YYYY-MM-DD) to probe for data."`
	Team      string `json:"team,omitempty" jsonschema_description:"Optional exact team name to restrict the probe to."`
}

// probePreview caps how many games a range probe returns; has_more signals
// the rest.
const probePreview = 10

var CheckDateRangeDefinition = ToolDefinition{
	Name:        "check_date_range",
	Description: "Return the earliest and latest match dates in the dataset. With start_date/end_date (and optionally a team) it also reports whether matches exist in that window, with a short preview.",
	InputSchema: CheckDateRangeInputSchema,
	Function:    CheckDateRange,
}

var CheckDateRangeInputSchema = GenerateSchema[CheckDateRangeInput]()

func CheckDateRange(input json.RawMessage) (string, error) {
	var in CheckDateRangeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	ctx := context.Background()
	earliest, latest, err := a.DateRange(ctx)
	if err != nil {
		return "", err
	}

	out := map[string]any{
		"earliest": earliest,
		"latest":   latest,
	}

	if in.StartDate != "" || in.EndDate != "" || in.Team != "" {
		teams := []string{in.Team}
		var games []duckdb.Game
		if in.Team != "" {
			games, err = a.FindGames(ctx, teams, in.StartDate, in.EndDate)
		} else {
			games, err = a.GamesInRange(ctx, in.StartDate, in.EndDate)
		}
		if err != nil {
			return "", err
		}
		count := len(games)
		hasMore := count > probePreview
		if hasMore {
			games = games[:probePreview]
		}
		out["count"] = count
		out["has_data"] = count > 0
		out["games"] = games
		out["has_more"] = hasMore
	}

	return marshalResult(out)
}
