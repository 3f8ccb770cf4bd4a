package tools

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tools-tests-")
	if err != nil {
		panic(err)
	}

	dataFile := filepath.Join(dir, "matches.parquet")
	if err := writeMatchFixture(dataFile); err != nil {
		panic(err)
	}
	_ = os.Setenv("NCSH_DATA_FILE", dataFile)
	_ = os.Setenv("NCSH_DATASET_DIR", filepath.Join(dir, "datasets"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func writeMatchFixture(path string) error {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return err
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE fixture (
			date DATE,
			home_team VARCHAR,
			away_team VARCHAR,
			home_score INTEGER,
			away_score INTEGER,
			league VARCHAR
		)`,
		`INSERT INTO fixture VALUES
			('2025-03-01', 'Key West FC', 'The Strikers', 2, 1, 'Mens Premier League'),
			('2025-03-08', 'Miami United', 'Key West FC', 0, 0, 'Mens Premier League'),
			('2025-03-15', 'The Strikers', 'Key West FC (1)', 1, 3, 'Mens Premier League'),
			('2025-04-05', 'Miami United', 'The Strikers', 4, 2, 'Cup')`,
		fmt.Sprintf("COPY fixture TO '%s' (FORMAT PARQUET)", strings.ReplaceAll(path, "'", "''")),
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
