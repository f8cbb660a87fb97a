package scoredb

import (
	"database/sql"
	"fmt"
	"time"
)

func createDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	configureConnectionPool(db)

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := createTables(tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

func configureConnectionPool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func createTables(tx *sql.Tx) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"runs", `
			CREATE TABLE IF NOT EXISTS runs (
				id TEXT PRIMARY KEY,
				name TEXT,
				source TEXT,
				started_at INTEGER NOT NULL,
				finished_at INTEGER,
				total_sites INTEGER DEFAULT 0,
				qualified_sites INTEGER DEFAULT 0,
				dataset_summary TEXT
			);`},
		{"site_scores", `
			CREATE TABLE IF NOT EXISTS site_scores (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL,
				site_id TEXT,
				site_name TEXT,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				base_points INTEGER NOT NULL,
				tiebreaker_points INTEGER NOT NULL,
				total_points INTEGER NOT NULL,
				qualification_method TEXT NOT NULL,
				transit_qualified INTEGER NOT NULL,
				total_stops INTEGER DEFAULT 0,
				total_routes INTEGER DEFAULT 0,
				high_frequency_stops INTEGER DEFAULT 0,
				high_frequency_validated_stops INTEGER DEFAULT 0,
				hqts_enhanced_stops INTEGER DEFAULT 0,
				estimated_peak_frequency REAL,
				within_hqta INTEGER NOT NULL,
				hqta_type TEXT,
				agency_primary TEXT,
				created_at INTEGER NOT NULL,
				FOREIGN KEY (run_id) REFERENCES runs(id)
			);`},
		{"idx_site_scores_run_id", `
			CREATE INDEX IF NOT EXISTS idx_site_scores_run_id ON site_scores(run_id);`},
	}

	for _, statement := range statements {
		if _, err := tx.Exec(statement.sql); err != nil {
			return fmt.Errorf("error creating %s: %w", statement.name, err)
		}
	}

	return nil
}
