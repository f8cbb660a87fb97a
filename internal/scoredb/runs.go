package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"transitscore.colosseumlihtc.org/internal/logging"
)

// ErrNotFound reports a run id with no stored row.
var ErrNotFound = errors.New("scoredb: run not found")

// Run is one stored batch analysis.
type Run struct {
	ID             string
	Name           string
	Source         string
	StartedAt      time.Time
	FinishedAt     time.Time // zero until FinishRun
	TotalSites     int
	QualifiedSites int
	DatasetSummary string
}

// Finished reports whether the run has recorded its final counters.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// CreateRun stores a new in-progress run and returns it. The id is a
// freshly generated UUID.
func (c *Client) CreateRun(ctx context.Context, name, source string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		StartedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := c.DB.ExecContext(ctx, `
		INSERT INTO runs (id, name, source, started_at) VALUES (?, ?, ?, ?);
	`, run.ID, run.Name, run.Source, run.StartedAt.UnixMilli())
	if err != nil {
		return Run{}, fmt.Errorf("error inserting run: %w", err)
	}

	return run, nil
}

// FinishRun records the final counters and summary for a run.
func (c *Client) FinishRun(ctx context.Context, id string, totalSites, qualifiedSites int, datasetSummary string) error {
	result, err := c.DB.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, total_sites = ?, qualified_sites = ?, dataset_summary = ?
		WHERE id = ?;
	`, time.Now().UnixMilli(), totalSites, qualifiedSites, datasetSummary, id)
	if err != nil {
		return fmt.Errorf("error finishing run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error finishing run: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetRun loads one run by id. Unknown ids return ErrNotFound.
func (c *Client) GetRun(ctx context.Context, id string) (Run, error) {
	row := c.DB.QueryRowContext(ctx, `
		SELECT id, name, source, started_at, finished_at, total_sites, qualified_sites, dataset_summary
		FROM runs WHERE id = ?;
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("error loading run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recently started runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, name, source, started_at, finished_at, total_sites, qualified_sites, dataset_summary
		FROM runs ORDER BY started_at DESC, id LIMIT ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "scoredb_list_runs")

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run            Run
		name           sql.NullString
		source         sql.NullString
		startedMillis  int64
		finishedMillis sql.NullInt64
		summary        sql.NullString
	)

	err := row.Scan(&run.ID, &name, &source, &startedMillis, &finishedMillis,
		&run.TotalSites, &run.QualifiedSites, &summary)
	if err != nil {
		return Run{}, err
	}

	run.Name = name.String
	run.Source = source.String
	run.DatasetSummary = summary.String
	run.StartedAt = time.UnixMilli(startedMillis).UTC()
	if finishedMillis.Valid {
		run.FinishedAt = time.UnixMilli(finishedMillis.Int64).UTC()
	}

	return run, nil
}
