package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mzakany23/ncsh-agent/internal/fuzzy"
)

type FuzzyMatchTeamsInput struct {
	TeamName string `json:"team_name" jsonschema_description:"Team name as the user wrote it, possibly misspelled or partial."`
	Limit    int    `json:"limit,omitempty" jsonschema_description:"Maximum number of candidates to return (default 5)."`
}

var FuzzyMatchTeamsDefinition = ToolDefinition{
	Name:        "fuzzy_match_teams",
	Description: "Resolve a possibly misspelled or partial team name to the exact names used in the dataset, ranked by confidence. Teams often appear under several variants (e.g. 'Key West FC' and 'Key West FC (1)'); use every returned variant in follow-up queries.",
	InputSchema: FuzzyMatchTeamsInputSchema,
	Function:    FuzzyMatchTeams,
}

var FuzzyMatchTeamsInputSchema = GenerateSchema[FuzzyMatchTeamsInput]()

func FuzzyMatchTeams(input json.RawMessage) (string, error) {
	var in FuzzyMatchTeamsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	teams, err := a.TeamNames(context.Background())
	if err != nil {
		return "", err
	}

	matches := fuzzy.MatchTeams(in.TeamName, teams, in.Limit)
	if len(matches) == 0 {
		return "", fmt.Errorf("no team matching %q found in the dataset", in.TeamName)
	}
	return marshalResult(map[string]any{
		"query":   in.TeamName,
		"matches": matches,
	})
}
