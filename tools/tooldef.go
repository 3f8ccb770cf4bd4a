package tools

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"

	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
)

// ToolDefinition binds a tool name and JSON schema to its handler. Handlers
// take the raw tool_use input and return the tool_result content; a non-nil
// error becomes an is_error result for the model to react to.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    func(input json.RawMessage) (string, error)
}

// GenerateSchema derives the input schema for a tool from its input struct.
// Schemas are inlined (no $ref) because the Messages API expects a single
// self-contained object.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

// openAnalyzer resolves the active Parquet file and opens a per-call handle.
// Tools stay stateless this way; the handle must be closed by the caller.
func openAnalyzer() (*duckdb.Analyzer, error) {
	return duckdb.Open(datasets.DataFile(""))
}

func marshalResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
