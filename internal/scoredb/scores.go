package scoredb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transitscore.colosseumlihtc.org/internal/ctcac"
	"transitscore.colosseumlihtc.org/internal/logging"
)

// SiteScore is one scored site inside a run.
type SiteScore struct {
	SiteID                      string
	SiteName                    string
	Latitude                    float64
	Longitude                   float64
	BasePoints                  int
	TiebreakerPoints            int
	TotalPoints                 int
	QualificationMethod         string
	TransitQualified            bool
	TotalStops                  int
	TotalRoutes                 int
	HighFrequencyStops          int
	HighFrequencyValidatedStops int
	HQTSEnhancedStops           int
	EstimatedPeakFrequency      *float64
	WithinHQTA                  bool
	HQTAType                    string
	AgencyPrimary               string
	CreatedAt                   time.Time
}

// NewSiteScore flattens a scoring result into its stored row shape.
func NewSiteScore(siteID, siteName string, lat, lon float64, result ctcac.ScoreResult, hqta ctcac.HQTAMatch) SiteScore {
	return SiteScore{
		SiteID:                      siteID,
		SiteName:                    siteName,
		Latitude:                    lat,
		Longitude:                   lon,
		BasePoints:                  result.BasePoints,
		TiebreakerPoints:            result.TiebreakerPoints,
		TotalPoints:                 result.TotalPoints,
		QualificationMethod:         string(result.QualificationMethod),
		TransitQualified:            result.TransitQualified,
		TotalStops:                  result.Frequency.TotalStops,
		TotalRoutes:                 result.Frequency.TotalRoutes,
		HighFrequencyStops:          result.Frequency.HighFrequencyStops,
		HighFrequencyValidatedStops: result.Frequency.HighFrequencyValidatedStops,
		HQTSEnhancedStops:           result.Frequency.HQTSEnhancedStops,
		EstimatedPeakFrequency:      result.Frequency.EstimatedPeakFrequency,
		WithinHQTA:                  hqta.WithinHQTA,
		HQTAType:                    hqta.HQTAType,
		AgencyPrimary:               hqta.AgencyPrimary,
	}
}

// InsertSiteScores stores every score against the run in a single transaction.
func (c *Client) InsertSiteScores(ctx context.Context, runID string, scores []SiteScore) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "scoredb_insert_site_scores")

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO site_scores (
			run_id, site_id, site_name, latitude, longitude,
			base_points, tiebreaker_points, total_points,
			qualification_method, transit_qualified,
			total_stops, total_routes, high_frequency_stops,
			high_frequency_validated_stops, hqts_enhanced_stops,
			estimated_peak_frequency, within_hqta, hqta_type, agency_primary,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "scoredb_insert_site_scores_stmt")

	now := time.Now().UnixMilli()
	for _, score := range scores {
		createdAt := now
		if !score.CreatedAt.IsZero() {
			createdAt = score.CreatedAt.UnixMilli()
		}

		_, err := stmt.ExecContext(ctx,
			runID, score.SiteID, score.SiteName, score.Latitude, score.Longitude,
			score.BasePoints, score.TiebreakerPoints, score.TotalPoints,
			score.QualificationMethod, score.TransitQualified,
			score.TotalStops, score.TotalRoutes, score.HighFrequencyStops,
			score.HighFrequencyValidatedStops, score.HQTSEnhancedStops,
			nullableFloat(score.EstimatedPeakFrequency), score.WithinHQTA,
			score.HQTAType, score.AgencyPrimary,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting site score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// ScoresForRun loads every stored score for a run in insertion order.
func (c *Client) ScoresForRun(ctx context.Context, runID string) ([]SiteScore, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT site_id, site_name, latitude, longitude,
			base_points, tiebreaker_points, total_points,
			qualification_method, transit_qualified,
			total_stops, total_routes, high_frequency_stops,
			high_frequency_validated_stops, hqts_enhanced_stops,
			estimated_peak_frequency, within_hqta, hqta_type, agency_primary,
			created_at
		FROM site_scores WHERE run_id = ? ORDER BY id;
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("error loading site scores: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "scoredb_scores_for_run")

	var scores []SiteScore
	for rows.Next() {
		var (
			score     SiteScore
			siteID    sql.NullString
			siteName  sql.NullString
			frequency sql.NullFloat64
			hqtaType  sql.NullString
			agency    sql.NullString
			created   int64
		)

		err := rows.Scan(&siteID, &siteName, &score.Latitude, &score.Longitude,
			&score.BasePoints, &score.TiebreakerPoints, &score.TotalPoints,
			&score.QualificationMethod, &score.TransitQualified,
			&score.TotalStops, &score.TotalRoutes, &score.HighFrequencyStops,
			&score.HighFrequencyValidatedStops, &score.HQTSEnhancedStops,
			&frequency, &score.WithinHQTA, &hqtaType, &agency,
			&created)
		if err != nil {
			return nil, fmt.Errorf("error scanning site score: %w", err)
		}

		score.SiteID = siteID.String
		score.SiteName = siteName.String
		score.HQTAType = hqtaType.String
		score.AgencyPrimary = agency.String
		if frequency.Valid {
			value := frequency.Float64
			score.EstimatedPeakFrequency = &value
		}
		score.CreatedAt = time.UnixMilli(created).UTC()

		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error loading site scores: %w", err)
	}

	return scores, nil
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
