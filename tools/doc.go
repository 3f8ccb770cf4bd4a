// Package tools defines the tool contracts the agent exposes to the model.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Dataset tools: get_schema, execute_sql, validate_sql, query_to_sql,
//     check_date_range, fuzzy_match_teams, find_games, build_dataset,
//     compact_dataset, summarize_results, complete_task.
//   - Invariants: tool_use and its corresponding tool_result remain adjacent
//     within a turn; every tool opens its own dataset handle and closes it
//     before returning.
package tools
