package tools

import (
	"encoding/json"
	"strings"
)

type CompleteTaskInput struct {
	Summary string `json:"summary,omitempty" jsonschema_description:"One-line statement of what was answered or produced."`
}

// CompleteTaskDefinition is the terminal marker for batch runs: calling it
// tells the loop the question is fully answered.
var CompleteTaskDefinition = ToolDefinition{
	Name:        "complete_task",
	Description: "Signal that the question has been fully answered. Call exactly once, after presenting the final answer.",
	InputSchema: CompleteTaskInputSchema,
	Function:    CompleteTask,
}

var CompleteTaskInputSchema = GenerateSchema[CompleteTaskInput]()

func CompleteTask(input json.RawMessage) (string, error) {
	var in CompleteTaskInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Summary) == "" {
		return "Task completed.", nil
	}
	return "Task completed: " + in.Summary, nil
}
