package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type SummarizeResultsInput struct {
	Results  string `json:"results" jsonschema_description:"Query results or rendered dataset text to summarize."`
	Question string `json:"question,omitempty" jsonschema_description:"The original question, so the summary stays on topic."`
	Type     string `json:"summarization_type,omitempty" jsonschema_description:"One of brief (default), detailed, comparative, insights, narrative."`
}

var SummarizeResultsDefinition = ToolDefinition{
	Name:        "summarize_results",
	Description: "Produce a short plain-language summary of query results. Use after large execute_sql or compact_dataset outputs instead of restating every row.",
	InputSchema: SummarizeResultsInputSchema,
	Function:    SummarizeResults,
}

var SummarizeResultsInputSchema = GenerateSchema[SummarizeResultsInput]()

const summarizeSystem = `You summarize soccer match query results for an analyst.
Be concrete: name teams, counts, scores and date ranges that appear in the data.
Never invent rows that are not present.`

// summarizeStyles maps summarization_type to extra instructions appended to
// the base system prompt.
var summarizeStyles = map[string]string{
	"brief":       "Three sentences at most.",
	"detailed":    "Cover every notable result; a short paragraph per theme.",
	"comparative": "Contrast the teams or periods present in the data side by side.",
	"insights":    "Lead with the two or three most surprising facts in the data.",
	"narrative":   "Tell the results as a short story of the season, in order.",
}

func SummarizeResults(input json.RawMessage) (string, error) {
	var in SummarizeResultsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Results) == "" {
		return "", fmt.Errorf("no results provided")
	}

	styleKey := in.Type
	if styleKey == "" {
		styleKey = "brief"
	}
	style, ok := summarizeStyles[styleKey]
	if !ok {
		return "", fmt.Errorf("unknown summarization_type %q", in.Type)
	}

	user := in.Results
	if in.Question != "" {
		user = fmt.Sprintf("Question: %s\n\nResults:\n%s", in.Question, in.Results)
	}
	return askModel(context.Background(), summarizeSystem+"\n"+style, user)
}
