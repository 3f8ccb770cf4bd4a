package duckdb

import (
	"context"
	"fmt"
	"strings"
)

// Game is one match row in the shape the tools report.
type Game struct {
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	League    string `json:"league"`
}

// Record summarizes a team's results over a set of games.
type Record struct {
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

const gameColumns = "CAST(date AS DATE) AS date, home_team, away_team, COALESCE(home_score, 0), COALESCE(away_score, 0), COALESCE(league, '')"

// FindGames returns matches involving any of the given team names, oldest
// first, optionally bounded by [startDate, endDate] (YYYY-MM-DD, inclusive).
func (a *Analyzer) FindGames(ctx context.Context, teams []string, startDate, endDate string) ([]Game, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("no team names provided")
	}

	var (
		conds []string
		args  []any
	)
	sides := make([]string, 0, len(teams)*2)
	for _, t := range teams {
		sides = append(sides, "home_team = ?", "away_team = ?")
		args = append(args, t, t)
	}
	conds = append(conds, "("+strings.Join(sides, " OR ")+")")

	if startDate != "" {
		conds = append(conds, "CAST(date AS DATE) >= CAST(? AS DATE)")
		args = append(args, startDate)
	}
	if endDate != "" {
		conds = append(conds, "CAST(date AS DATE) <= CAST(? AS DATE)")
		args = append(args, endDate)
	}

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY date, league, home_team",
		gameColumns, TableName, strings.Join(conds, " AND "))

	return a.queryGames(ctx, q, args...)
}

// AllGames returns the whole dataset in compact-projection order. It feeds
// the compact_dataset renderings.
func (a *Analyzer) AllGames(ctx context.Context) ([]Game, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY date, league, home_team", gameColumns, TableName)
	return a.queryGames(ctx, q)
}

// GamesInRange returns every match within the optional inclusive bounds,
// regardless of team.
func (a *Analyzer) GamesInRange(ctx context.Context, startDate, endDate string) ([]Game, error) {
	conds := []string{"1=1"}
	var args []any
	if startDate != "" {
		conds = append(conds, "CAST(date AS DATE) >= CAST(? AS DATE)")
		args = append(args, startDate)
	}
	if endDate != "" {
		conds = append(conds, "CAST(date AS DATE) <= CAST(? AS DATE)")
		args = append(args, endDate)
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY date, league, home_team",
		gameColumns, TableName, strings.Join(conds, " AND "))
	return a.queryGames(ctx, q, args...)
}

func (a *Analyzer) queryGames(ctx context.Context, query string, args ...any) ([]Game, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var (
			g    Game
			date any
		)
		if err := rows.Scan(&date, &g.HomeTeam, &g.AwayTeam, &g.HomeScore, &g.AwayScore, &g.League); err != nil {
			return nil, err
		}
		if s, ok := normalizeValue(date).(string); ok {
			g.Date = s
		} else {
			g.Date = fmt.Sprintf("%v", date)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// BuildTeamDataset copies the matches involving team (substring match on
// either side, the original contract for dataset builds) into a new Parquet
// file. Returns the number of rows written.
func (a *Analyzer) BuildTeamDataset(ctx context.Context, team, outFile string) (int, error) {
	if strings.TrimSpace(team) == "" {
		return 0, fmt.Errorf("no team name provided")
	}

	pattern := "%" + escapeString(team) + "%"
	var count int
	row := a.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE home_team LIKE ? OR away_team LIKE ?", TableName),
		pattern, pattern,
	)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("no matches found for team %q", team)
	}

	// COPY cannot be parameterized; both the pattern and the path are escaped.
	copyStmt := fmt.Sprintf(
		"COPY (SELECT * FROM %s WHERE home_team LIKE '%s' OR away_team LIKE '%s' ORDER BY date) TO '%s' (FORMAT PARQUET)",
		TableName, pattern, pattern, escapeString(outFile),
	)
	if _, err := a.db.ExecContext(ctx, copyStmt); err != nil {
		return 0, fmt.Errorf("write dataset: %w", err)
	}
	return count, nil
}

// TeamRecord folds games into a win/draw/loss record from the perspective of
// the given team names (any variant counts as "ours").
func TeamRecord(games []Game, teams []string) Record {
	ours := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		ours[t] = struct{}{}
	}

	var rec Record
	for _, g := range games {
		_, home := ours[g.HomeTeam]
		_, away := ours[g.AwayTeam]
		if home == away {
			// Either a match between two of our variants or none; skip the
			// ambiguous case rather than double count.
			if !home {
				continue
			}
		}
		rec.Played++
		gf, ga := g.HomeScore, g.AwayScore
		if away && !home {
			gf, ga = ga, gf
		}
		rec.GoalsFor += gf
		rec.GoalsAgainst += ga
		switch {
		case gf > ga:
			rec.Wins++
		case gf < ga:
			rec.Losses++
		default:
			rec.Draws++
		}
	}
	return rec
}
