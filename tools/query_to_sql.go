package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type QueryToSQLInput struct {
	Question string `json:"question" jsonschema_description:"Natural-language question to translate into a single DuckDB SELECT over the 'matches' table."`
}

var QueryToSQLDefinition = ToolDefinition{
	Name:        "query_to_sql",
	Description: "Translate a natural-language question into validated DuckDB SQL over the 'matches' table. Returns the SQL without executing it; pass it to execute_sql to run.",
	InputSchema: QueryToSQLInputSchema,
	Function:    QueryToSQL,
}

var QueryToSQLInputSchema = GenerateSchema[QueryToSQLInput]()

const queryToSQLSystem = `You translate questions about a soccer match dataset into DuckDB SQL.
The only table is 'matches'. Respond with a JSON object of the form {"sql": "SELECT ..."} and nothing else.
Rules: one SELECT statement, no DDL or DML, use LIMIT 20 unless the question needs every row.`

func QueryToSQL(input json.RawMessage) (string, error) {
	var in QueryToSQLInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Question) == "" {
		return "", fmt.Errorf("no question provided")
	}

	ctx := context.Background()

	a, err := openAnalyzer()
	if err != nil {
		return "", err
	}
	defer a.Close()

	schema, err := a.CompactSchema(ctx)
	if err != nil {
		return "", err
	}

	reply, err := askModel(ctx, queryToSQLSystem,
		fmt.Sprintf("Schema: %s\nQuestion: %s", schema, in.Question))
	if err != nil {
		return "", err
	}

	query := extractSQL(reply)
	if query == "" {
		return "", fmt.Errorf("model reply contained no SQL: %s", reply)
	}
	if err := a.Validate(ctx, query); err != nil {
		return "", fmt.Errorf("generated SQL did not validate: %w\nSQL: %s", err, query)
	}

	return marshalResult(map[string]any{
		"sql":   query,
		"valid": true,
	})
}

// extractSQL pulls the statement out of the model reply: the documented JSON
// shape first, then a bare statement or fenced block as fallback.
func extractSQL(reply string) string {
	if v := gjson.Get(reply, "sql"); v.Exists() {
		return strings.TrimSpace(v.String())
	}

	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToUpper(s), "SELECT") || strings.HasPrefix(strings.ToUpper(s), "WITH") {
		return s
	}
	return ""
}
