// Package prompts centralizes the system prompts and the initial user
// message construction so the query loop and the chat REPL stay consistent.
package prompts

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Analysis is the system prompt for the main query agent.
const Analysis = `<purpose>
    You are an expert data analyst that uses SQL for DuckDB databases. ALWAYS use table name 'matches'.
</purpose>

<instructions>
    <operations>
        DATA ANALYSIS: SQL queries (e.g., "How did Key West FC perform?")
        DATASET CREATION: Create team datasets (e.g., "Create dataset for Key West FC")
        DATASET COMPACTION: Compact representations (e.g., "Compact the dataset in CSV format")
        TEAM COMPARISON: Compare performance between teams (e.g., "Compare Key West FC and The Strikers")
    </operations>

    <tool_selection>
        1. find_games: the PREFERRED tool for team performance. ALWAYS use it FIRST for match data
           for a single team; it handles date filtering and returns both matches and a summary record.
           Do NOT use execute_sql for team performance when find_games can answer.
        2. fuzzy_match_teams: resolve rough team names to the names actually in the dataset.
           Use the MATCHED names in subsequent tool calls.
        3. check_date_range: verify data exists for a period BEFORE any date-specific analysis.
        4. get_schema, validate_sql, query_to_sql: database support tools.
        5. build_dataset / compact_dataset: create filtered datasets and compact renderings.
        6. execute_sql: ONLY for specialized queries the other tools cannot handle.
           ALWAYS include a LIMIT clause (max 20 rows).
        7. summarize_results: condense large result sets before answering.
        8. complete_task: call when the answer is final.
    </tool_selection>

    <requirements>
        1. ALWAYS use 'matches' as the table name
        2. Include actual data and format results well
        3. For team performance: show wins/losses/draws, goals scored/conceded
        4. Handle team name variants (e.g., "Team" and "Team (1)")
        5. When analyzing a time period, first check that data exists for it
        6. For team comparisons, start with fuzzy_match_teams for each side
        7. Never return huge result sets; filter and limit
        8. Provide complete answers with conclusions
    </requirements>
</instructions>`

// Batch is a slimmer system prompt for non-interactive processing.
const Batch = `<purpose>
    You are an expert data analyst that uses SQL for DuckDB databases. You process batches of soccer match data.
</purpose>

<instructions>
    1. ALWAYS use 'matches' as the table name
    2. Use check_date_range before time-based queries
    3. Keep responses concise and focused on data facts
    4. Use find_games for team performance instead of raw SQL
    5. ALWAYS limit result sets to 20 rows maximum
</instructions>`

var monthYearRe = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)

var monthsByAbbr = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// DateHint extracts a "Month YYYY" mention from the question and returns the
// inclusive date range of that month. ok is false when no mention is found.
func DateHint(question string) (start, end string, ok bool) {
	m := monthYearRe.FindStringSubmatch(question)
	if m == nil {
		return "", "", false
	}
	month := monthsByAbbr[strings.ToLower(m[1])]
	var year int
	fmt.Sscanf(m[2], "%d", &year)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), true
}

// InitialMessage builds the first user message for a query: the question
// plus just enough grounding (date, data source, compact schema, optional
// month hint) for the model to write correct SQL without a schema lookup.
func InitialMessage(question, dataFile, compactSchema string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Today's date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Data source: %s\n", dataFile)
	fmt.Fprintf(&b, "Schema: %s", compactSchema)
	if start, end, ok := DateHint(question); ok {
		fmt.Fprintf(&b, " | Date range: %s to %s", start, end)
	}
	b.WriteString("\n")
	return b.String()
}
