package db

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// OpenDuckDB opens a DuckDB database at path (empty for in-memory) and
// seeds it with the demo dataset. Goose has no DuckDB dialect, so the
// schema is applied directly.
func OpenDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := seedDuckDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func seedDuckDB(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS passengers (
			id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL,
			class INTEGER NOT NULL,
			fare DOUBLE NOT NULL,
			embarked VARCHAR NOT NULL,
			survived BOOLEAN NOT NULL DEFAULT false
		)`,
		`DELETE FROM passengers`,
		`INSERT INTO passengers (id, name, class, fare, embarked, survived) VALUES
			(1, 'Braund, Mr. Owen Harris', 3, 7.25, 'S', false),
			(2, 'Cumings, Mrs. John Bradley', 1, 71.2833, 'C', true),
			(3, 'Heikkinen, Miss Laina', 3, 7.925, 'S', true),
			(4, 'Futrelle, Mrs. Jacques Heath', 1, 53.1, 'S', true),
			(5, 'Allen, Mr. William Henry', 3, 8.05, 'S', false),
			(6, 'Moran, Mr. James', 3, 8.4583, 'Q', false),
			(7, 'McCarthy, Mr. Timothy J', 1, 51.8625, 'S', false),
			(8, 'Palsson, Master Gosta Leonard', 3, 21.075, 'S', false),
			(9, 'Johnson, Mrs. Oscar W', 3, 11.1333, 'S', true),
			(10, 'Nasser, Mrs. Nicholas', 2, 30.0708, 'C', true),
			(11, 'Sandstrom, Miss Marguerite Rut', 3, 16.7, 'S', true),
			(12, 'Bonnell, Miss Elizabeth', 1, 26.55, 'S', true)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("seed duckdb: %w", err)
		}
	}
	return nil
}
