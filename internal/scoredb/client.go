// Package scoredb persists batch scoring runs and their per-site results in
// SQLite, using the pure Go modernc driver. The API server records portfolio
// runs here when a database path is configured; the batch CLI can do the same.
package scoredb

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client is the entry point for run storage.
type Client struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the score database at path, creating the schema when it
// does not exist yet.
func NewClient(path string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := createDB(path)
	if err != nil {
		return nil, fmt.Errorf("error creating score database: %w", err)
	}

	return &Client{DB: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Client) Close() error {
	return c.DB.Close()
}
