package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

type ValidateSQLInput struct {
	Query string `json:"query" jsonschema_description:"DuckDB SQL to check for syntax and schema errors without running it."`
}

var ValidateSQLDefinition = ToolDefinition{
	Name:        "validate_sql",
	Description: "Validate a SQL query against the dataset schema without executing it. Use before execute_sql when the query is complex.",
	InputSchema: ValidateSQLInputSchema,
	Function:    ValidateSQL,
}

var ValidateSQLInputSchema = GenerateSchema[ValidateSQLInput]()

func ValidateSQL(input json.RawMessage) (string, error) {
	var in ValidateSQLInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	if err := a.Validate(context.Background(), in.Query); err != nil {
		return "", fmt.Errorf("invalid SQL: %w", err)
	}
	return marshalResult(map[string]any{"valid": true})
}
