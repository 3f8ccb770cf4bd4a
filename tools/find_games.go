package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mzakany23/ncsh-agent/internal/duckdb"
)

type FindGamesInput struct {
	Teams     []string `json:"teams" jsonschema_description:"Exact team names to search for, including every variant returned by fuzzy_match_teams."`
	StartDate string   `json:"start_date,omitempty" jsonschema_description:"Inclusive lower bound, YYYY-MM-DD."`
	EndDate   string   `json:"end_date,omitempty" jsonschema_description:"Inclusive upper bound, YYYY-MM-DD."`
}

var FindGamesDefinition = ToolDefinition{
	Name:        "find_games",
	Description: "Find all matches involving the given teams (home or away), optionally within a date range, and compute the combined win/draw/loss record. Prefer this over hand-written SQL for team performance questions.",
	InputSchema: FindGamesInputSchema,
	Function:    FindGames,
}

var FindGamesInputSchema = GenerateSchema[FindGamesInput]()

func FindGames(input json.RawMessage) (string, error) {
	var in FindGamesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if len(in.Teams) == 0 {
		return "", fmt.Errorf("no team names provided; call fuzzy_match_teams first")
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	games, err := a.FindGames(context.Background(), in.Teams, in.StartDate, in.EndDate)
	if err != nil {
		return "", err
	}

	return marshalResult(map[string]any{
		"games":  games,
		"count":  len(games),
		"record": duckdb.TeamRecord(games, in.Teams),
	})
}
