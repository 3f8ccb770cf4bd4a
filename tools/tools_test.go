package tools_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mzakany23/ncsh-agent/tools"
)

func TestRegistry_ToolNames(t *testing.T) {
	defs := tools.Registry()
	want := map[string]struct{}{
		"get_schema":        {},
		"execute_sql":       {},
		"validate_sql":      {},
		"query_to_sql":      {},
		"check_date_range":  {},
		"fuzzy_match_teams": {},
		"find_games":        {},
		"build_dataset":     {},
		"compact_dataset":   {},
		"summarize_results": {},
		"complete_task":     {},
	}
	require.Len(t, defs, len(want))
	for _, d := range defs {
		_, ok := want[d.Name]
		assert.True(t, ok, "unexpected tool in registry: %q", d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.NotNil(t, d.Function, d.Name)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, tools.IsTerminal("complete_task"))
	assert.False(t, tools.IsTerminal("execute_sql"))
}

func TestGetSchema(t *testing.T) {
	out, err := tools.GetSchema(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "matches", gjson.Get(out, "table").String())
	assert.EqualValues(t, 6, gjson.Get(out, "columns.#").Int())
	assert.Equal(t, "date", gjson.Get(out, "columns.0.column_name").String())
}

func TestExecuteSQL(t *testing.T) {
	out, err := tools.ExecuteSQL(json.RawMessage(
		`{"query": "SELECT home_team, home_score FROM matches WHERE date = '2025-03-01'"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 1, gjson.Get(out, "row_count").Int())
	assert.Equal(t, "Key West FC", gjson.Get(out, "rows.0.home_team").String())
}

func TestExecuteSQL_AutocorrectsTableName(t *testing.T) {
	out, err := tools.ExecuteSQL(json.RawMessage(`{"query": "SELECT COUNT(*) AS n FROM input_data"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 4, gjson.Get(out, "rows.0.n").Int())
}

func TestExecuteSQL_BadQuery(t *testing.T) {
	_, err := tools.ExecuteSQL(json.RawMessage(`{"query": "SELECT nope FROM matches"}`))
	require.Error(t, err)
}

func TestValidateSQL(t *testing.T) {
	out, err := tools.ValidateSQL(json.RawMessage(`{"query": "SELECT date FROM matches"}`))
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "valid").Bool())

	_, err = tools.ValidateSQL(json.RawMessage(`{"query": "SELEC broken"}`))
	require.Error(t, err)
}

func TestCheckDateRange(t *testing.T) {
	out, err := tools.CheckDateRange(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", gjson.Get(out, "earliest").String())
	assert.Equal(t, "2025-04-05", gjson.Get(out, "latest").String())
	assert.False(t, gjson.Get(out, "count").Exists())
}

func TestCheckDateRange_WindowProbe(t *testing.T) {
	out, err := tools.CheckDateRange(json.RawMessage(
		`{"start_date": "2025-03-01", "end_date": "2025-03-31"}`))
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "has_data").Bool())
	assert.EqualValues(t, 3, gjson.Get(out, "count").Int())
	assert.False(t, gjson.Get(out, "has_more").Bool())

	out, err = tools.CheckDateRange(json.RawMessage(
		`{"team": "Key West FC", "start_date": "2025-05-01", "end_date": "2025-05-31"}`))
	require.NoError(t, err)
	assert.False(t, gjson.Get(out, "has_data").Bool())
	assert.EqualValues(t, 0, gjson.Get(out, "count").Int())
}

func TestFuzzyMatchTeams(t *testing.T) {
	out, err := tools.FuzzyMatchTeams(json.RawMessage(`{"team_name": "Key Wst"}`))
	require.NoError(t, err)
	first := gjson.Get(out, "matches.0.team_name").String()
	assert.Contains(t, first, "Key West")

	_, err = tools.FuzzyMatchTeams(json.RawMessage(`{"team_name": "zzzzzzzzzzzz"}`))
	require.Error(t, err)
}

func TestFindGames(t *testing.T) {
	out, err := tools.FindGames(json.RawMessage(
		`{"teams": ["Key West FC", "Key West FC (1)"]}`))
	require.NoError(t, err)
	assert.EqualValues(t, 3, gjson.Get(out, "count").Int())
	assert.EqualValues(t, 2, gjson.Get(out, "record.wins").Int())
	assert.EqualValues(t, 1, gjson.Get(out, "record.draws").Int())

	_, err = tools.FindGames(json.RawMessage(`{"teams": []}`))
	require.Error(t, err)
}

func TestFindGames_DateBounds(t *testing.T) {
	out, err := tools.FindGames(json.RawMessage(
		`{"teams": ["Key West FC"], "start_date": "2025-03-05", "end_date": "2025-03-31"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 1, gjson.Get(out, "count").Int())
	assert.Equal(t, "Miami United", gjson.Get(out, "games.0.home_team").String())
}

func TestBuildDataset(t *testing.T) {
	out, err := tools.BuildDataset(json.RawMessage(`{"team": "Key West"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 3, gjson.Get(out, "rows").Int())

	file := gjson.Get(out, "file").String()
	require.NotEmpty(t, file)
	_, err = os.Stat(file)
	require.NoError(t, err)
}

func TestBuildDataset_RejectsEscapingPaths(t *testing.T) {
	_, err := tools.BuildDataset(json.RawMessage(
		`{"team": "Key West", "output_file": "../escape.parquet"}`))
	require.Error(t, err)

	_, err = tools.BuildDataset(json.RawMessage(
		`{"team": "Key West", "output_file": "/tmp/abs.parquet"}`))
	require.Error(t, err)
}

func TestBuildDataset_UnknownTeam(t *testing.T) {
	_, err := tools.BuildDataset(json.RawMessage(`{"team": "Nonexistent United"}`))
	require.Error(t, err)
}

func TestCompactDataset(t *testing.T) {
	out, err := tools.CompactDataset(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Contains(t, out, "COMPACT FORMAT")
	assert.Contains(t, out, "2025-03-01|Key West FC|The Strikers|2|1|")

	_, err = tools.CompactDataset(json.RawMessage(`{"format": "xml"}`))
	require.Error(t, err)
}

func TestCompactDataset_CSV(t *testing.T) {
	out, err := tools.CompactDataset(json.RawMessage(`{"format": "csv"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "dt,ht,at,hs,as,lg")
}

func TestCompleteTask(t *testing.T) {
	out, err := tools.CompleteTask(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "Task completed.", out)

	out, err = tools.CompleteTask(json.RawMessage(`{"summary": "answered the March question"}`))
	require.NoError(t, err)
	assert.Equal(t, "Task completed: answered the March question", out)
}

func TestGenerateSchema_DescribesFields(t *testing.T) {
	schema := tools.GenerateSchema[struct {
		Query string `json:"query" jsonschema_description:"the SQL"`
	}]()
	require.NotNil(t, schema.Properties)
}
