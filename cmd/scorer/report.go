package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/refdata"
)

// report is the portfolio scoring output.
type report struct {
	Name        string                    `json:"name,omitempty"`
	RunID       string                    `json:"runId,omitempty"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Datasets    models.DatasetStatusModel `json:"datasets"`
	Summary     reportSummary             `json:"summary"`
	Sites       []models.ScoreEntry       `json:"sites"`
}

// reportSummary aggregates the portfolio for quick review.
type reportSummary struct {
	Sites          int            `json:"sites"`
	Qualified      int            `json:"qualifiedSites"`
	ByMethod       map[string]int `json:"byMethod"`
	PointHistogram map[int]int    `json:"pointHistogram"`
}

func buildReport(name string, entries []models.ScoreEntry, stats refdata.Stats) report {
	return report{
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Datasets:    models.NewDatasetStatusModel(stats),
		Summary:     buildSummary(entries),
		Sites:       entries,
	}
}

func buildSummary(entries []models.ScoreEntry) reportSummary {
	summary := reportSummary{
		Sites:          len(entries),
		ByMethod:       make(map[string]int),
		PointHistogram: make(map[int]int),
	}
	for _, entry := range entries {
		summary.ByMethod[entry.Score.QualificationMethod]++
		summary.PointHistogram[entry.Score.TotalPoints]++
		if entry.Score.TransitQualified {
			summary.Qualified++
		}
	}
	return summary
}

// checkReportPath rejects unsupported report extensions before any scoring
// work happens.
func checkReportPath(path string) error {
	if path == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv":
		return nil
	default:
		return fmt.Errorf("unsupported report format %q, use .json or .csv", filepath.Ext(path))
	}
}

// writeReport writes the report to path, picking the format from the
// extension. An empty path writes JSON to stdout.
func writeReport(path string, rep report) error {
	if path == "" {
		return writeJSONReport(os.Stdout, rep)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = writeCSVReport(f, rep)
	default:
		err = writeJSONReport(f, rep)
	}
	if err != nil {
		f.Close() // nolint:errcheck
		return err
	}
	return f.Close()
}

func writeJSONReport(w io.Writer, rep report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

// writeCSVReport flattens the per-site results into one row per site. The
// portfolio summary stays in the JSON report and the log line.
func writeCSVReport(w io.Writer, rep report) error {
	writer := csv.NewWriter(w)

	header := []string{
		"site_id", "name", "latitude", "longitude",
		"total_points", "base_points", "tiebreaker_points",
		"qualification_method", "transit_qualified",
		"within_hqta", "hqta_type", "agency_primary",
		"total_stops", "high_frequency_stops", "validated_stops",
		"estimated_peak_frequency",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, entry := range rep.Sites {
		frequency := ""
		if entry.Frequency.EstimatedPeakFrequency != nil {
			frequency = strconv.FormatFloat(*entry.Frequency.EstimatedPeakFrequency, 'f', 1, 64)
		}

		row := []string{
			entry.Site.SiteID,
			entry.Site.Name,
			strconv.FormatFloat(entry.Site.Latitude, 'f', -1, 64),
			strconv.FormatFloat(entry.Site.Longitude, 'f', -1, 64),
			strconv.Itoa(entry.Score.TotalPoints),
			strconv.Itoa(entry.Score.BasePoints),
			strconv.Itoa(entry.Score.TiebreakerPoints),
			entry.Score.QualificationMethod,
			strconv.FormatBool(entry.Score.TransitQualified),
			strconv.FormatBool(entry.HQTA.WithinHQTA),
			entry.HQTA.HQTAType,
			entry.HQTA.AgencyPrimary,
			strconv.Itoa(entry.Frequency.TotalStops),
			strconv.Itoa(entry.Frequency.HighFrequencyStops),
			strconv.Itoa(entry.Frequency.HighFrequencyValidatedStops),
			frequency,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
