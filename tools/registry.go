package tools

// Registry returns all tool definitions wired for the agent.
func Registry() []ToolDefinition {
	return []ToolDefinition{
		GetSchemaDefinition,
		ExecuteSQLDefinition,
		ValidateSQLDefinition,
		QueryToSQLDefinition,
		CheckDateRangeDefinition,
		FuzzyMatchTeamsDefinition,
		FindGamesDefinition,
		BuildDatasetDefinition,
		CompactDatasetDefinition,
		SummarizeResultsDefinition,
		CompleteTaskDefinition,
	}
}

// IsTerminal reports whether a tool call ends a batch run.
func IsTerminal(name string) bool {
	return name == CompleteTaskDefinition.Name
}
