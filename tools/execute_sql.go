package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

type ExecuteSQLInput struct {
	Query string `json:"query" jsonschema_description:"DuckDB SQL to run against the 'matches' table. Prefer LIMIT 20 on exploratory queries."`
}

// maxResultRows keeps tool results predictably small for windowing and token
// heuristics; the model is told to refine the query instead of paging.
const maxResultRows = 200

var ExecuteSQLDefinition = ToolDefinition{
	Name:        "execute_sql",
	Description: "Execute a DuckDB SQL query against the 'matches' table and return the rows as JSON. Common table-name slips (data, input_data) are corrected automatically.",
	InputSchema: ExecuteSQLInputSchema,
	Function:    ExecuteSQL,
}

var ExecuteSQLInputSchema = GenerateSchema[ExecuteSQLInput]()

func ExecuteSQL(input json.RawMessage) (string, error) {
	var in ExecuteSQLInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	res, err := a.Query(context.Background(), in.Query)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}

	truncated := false
	if res.RowCount > maxResultRows {
		res.Rows = res.Rows[:maxResultRows]
		truncated = true
	}

	out := map[string]any{
		"columns":   res.Columns,
		"rows":      res.Rows,
		"row_count": res.RowCount,
	}
	if truncated {
		out["truncated"] = true
		out["note"] = fmt.Sprintf("showing first %d of %d rows; add filters or LIMIT to narrow the query", maxResultRows, res.RowCount)
	}
	return marshalResult(out)
}
