// Package render formats query results and dataset projections for two
// audiences: the terminal (tablewriter) and the model's context window
// (compact pipe-delimited text).
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mzakany23/ncsh-agent/internal/duckdb"
)

// Format names accepted by the compact_dataset tool and the compact command.
const (
	FormatCompact = "compact"
	FormatTable   = "table"
	FormatCSV     = "csv"
)

// ValidFormat reports whether f is a known dataset rendering format.
func ValidFormat(f string) bool {
	switch f {
	case FormatCompact, FormatTable, FormatCSV:
		return true
	}
	return false
}

// maxLeagueRunes truncates long league names in compact mode to save context.
const maxLeagueRunes = 20

// Games renders games in the requested format.
func Games(games []duckdb.Game, format string) (string, error) {
	switch format {
	case FormatTable:
		return gamesTable(games), nil
	case FormatCSV:
		return gamesCSV(games)
	case FormatCompact, "":
		return gamesCompact(games), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want compact, table, or csv)", format)
	}
}

// gamesCompact emits one pipe-delimited line per match under a legend header:
// YYYY-MM-DD|HomeTeam|AwayTeam|H|A|League
func gamesCompact(games []duckdb.Game) string {
	var b strings.Builder
	b.WriteString("COMPACT FORMAT: dt=date, ht=home_team, at=away_team, hs=home_score, as=away_score, lg=league\n")
	for _, g := range games {
		league := g.League
		if r := []rune(league); len(r) > maxLeagueRunes {
			league = string(r[:maxLeagueRunes]) + "..."
		}
		fmt.Fprintf(&b, "%s|%s|%s|%d|%d|%s\n", g.Date, g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, league)
	}
	return b.String()
}

func gamesTable(games []duckdb.Game) string {
	var b strings.Builder
	table := newTable(&b)
	table.SetHeader([]string{"DATE", "HOME TEAM", "AWAY TEAM", "H", "A", "LEAGUE"})
	for _, g := range games {
		table.Append([]string{
			g.Date, g.HomeTeam, g.AwayTeam,
			fmt.Sprintf("%d", g.HomeScore), fmt.Sprintf("%d", g.AwayScore),
			g.League,
		})
	}
	table.Render()
	return b.String()
}

func gamesCSV(games []duckdb.Game) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"dt", "ht", "at", "hs", "as", "lg"}); err != nil {
		return "", err
	}
	for _, g := range games {
		rec := []string{
			g.Date, g.HomeTeam, g.AwayTeam,
			fmt.Sprintf("%d", g.HomeScore), fmt.Sprintf("%d", g.AwayScore),
			g.League,
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// Result writes a generic query result as a borderless table.
func Result(w io.Writer, res *duckdb.Result) {
	if res == nil || res.RowCount == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}

	table := newTable(w)
	table.SetHeader(res.Columns)
	for _, row := range res.Rows {
		line := make([]string, 0, len(res.Columns))
		for _, col := range res.Columns {
			v := row[col]
			if v == nil {
				line = append(line, "NULL")
				continue
			}
			line = append(line, fmt.Sprintf("%v", v))
		}
		table.Append(line)
	}
	table.Render()
}

// newTable configures tablewriter for dense terminal output.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}
