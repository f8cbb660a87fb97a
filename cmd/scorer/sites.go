package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// loadSites reads the site CSV. The header row is required and maps the
// columns, so order does not matter; latitude and longitude are required
// per site, site_id and name are optional. Rows that cannot be scored are
// logged and skipped, only an unusable file is an error.
func loadSites(path string, logger *slog.Logger) ([]models.SiteModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"latitude", "longitude"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing the %s column", required)
		}
	}

	var sites []models.SiteModel
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping unreadable CSV row", "line", line, "error", err)
			continue
		}

		site, err := siteFromRow(row, columns)
		if err != nil {
			logger.Warn("skipping site row", "line", line, "error", err)
			continue
		}
		if site.SiteID == "" {
			// Positional ids keep persisted scores distinguishable when the
			// CSV has no site_id values.
			site.SiteID = fmt.Sprintf("site-%d", len(sites)+1)
		}
		sites = append(sites, site)
	}

	if len(sites) == 0 {
		return nil, fmt.Errorf("no scorable sites in %s", path)
	}
	return sites, nil
}

func siteFromRow(row []string, columns map[string]int) (models.SiteModel, error) {
	lat, err := strconv.ParseFloat(csvField(row, columns, "latitude"), 64)
	if err != nil {
		return models.SiteModel{}, fmt.Errorf("bad latitude: %w", err)
	}
	if err := utils.ValidateLatitude(lat); err != nil {
		return models.SiteModel{}, err
	}

	lon, err := strconv.ParseFloat(csvField(row, columns, "longitude"), 64)
	if err != nil {
		return models.SiteModel{}, fmt.Errorf("bad longitude: %w", err)
	}
	if err := utils.ValidateLongitude(lon); err != nil {
		return models.SiteModel{}, err
	}

	return models.SiteModel{
		SiteID:    utils.SanitizeInput(csvField(row, columns, "site_id")),
		Name:      utils.SanitizeInput(csvField(row, columns, "name")),
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func csvField(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
