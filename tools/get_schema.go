package tools

import (
	"context"
	"encoding/json"

	"github.com/mzakany23/ncsh-agent/internal/duckdb"
)

type GetSchemaInput struct{}

var GetSchemaDefinition = ToolDefinition{
	Name:        "get_schema",
	Description: "Get the schema of the matches dataset: every column name and its type. Call this before writing SQL if you are unsure what columns exist.",
	InputSchema: GetSchemaInputSchema,
	Function:    GetSchema,
}

var GetSchemaInputSchema = GenerateSchema[GetSchemaInput]()

func GetSchema(input json.RawMessage) (string, error) {
	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	cols, err := a.Schema(context.Background())
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]any{
		"table":   duckdb.TableName,
		"columns": cols,
	})
}
