package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitscore.colosseumlihtc.org/internal/models"
)

func sampleEntries() []models.ScoreEntry {
	frequency := 12.5

	return []models.ScoreEntry{
		{
			Site: models.SiteModel{SiteID: "downtown", Name: "Downtown Lofts", Latitude: 34.0522, Longitude: -118.2437},
			Score: models.ScoreModel{
				BasePoints:          6,
				TiebreakerPoints:    1,
				TotalPoints:         7,
				QualificationMethod: "ULTIMATE_FREQUENCY_QUALIFIED",
				TransitQualified:    true,
			},
			Frequency: models.FrequencyModel{
				TotalStops:                  2,
				HighFrequencyStops:          2,
				HighFrequencyValidatedStops: 2,
				EstimatedPeakFrequency:      &frequency,
			},
		},
		{
			Site: models.SiteModel{SiteID: "railside", Latitude: 34.11, Longitude: -118.29},
			Score: models.ScoreModel{
				BasePoints:          7,
				TotalPoints:         7,
				QualificationMethod: "HQTA_POLYGON_PROVEN",
				TransitQualified:    true,
			},
			HQTA: models.HQTAModel{WithinHQTA: true, HQTAType: "major_stop_rail", AgencyPrimary: "LA Metro"},
		},
		{
			Site: models.SiteModel{SiteID: "remote", Latitude: 36.0, Longitude: -120.0},
			Score: models.ScoreModel{
				QualificationMethod: "NO_NEARBY_STOPS",
			},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	summary := buildSummary(sampleEntries())

	assert.Equal(t, 3, summary.Sites)
	assert.Equal(t, 2, summary.Qualified)
	assert.Equal(t, map[string]int{
		"ULTIMATE_FREQUENCY_QUALIFIED": 1,
		"HQTA_POLYGON_PROVEN":          1,
		"NO_NEARBY_STOPS":              1,
	}, summary.ByMethod)
	assert.Equal(t, map[int]int{7: 2, 0: 1}, summary.PointHistogram)
}

func TestCheckReportPath(t *testing.T) {
	assert.NoError(t, checkReportPath(""))
	assert.NoError(t, checkReportPath("report.json"))
	assert.NoError(t, checkReportPath("REPORT.CSV"))
	assert.Error(t, checkReportPath("report.xlsx"))
	assert.Error(t, checkReportPath("report"))
}

func TestWriteJSONReport(t *testing.T) {
	rep := buildReport("spring-batch", sampleEntries(), createTestManager(t).Stats())
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, writeReport(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "spring-batch", decoded["name"])
	assert.NotEmpty(t, decoded["generatedAt"])

	summary, ok := decoded["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, summary["sites"])
	assert.EqualValues(t, 2, summary["qualifiedSites"])

	sites, ok := decoded["sites"].([]interface{})
	require.True(t, ok)
	assert.Len(t, sites, 3)

	datasets, ok := decoded["datasets"].(map[string]interface{})
	require.True(t, ok)
	stops, ok := datasets["stops"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 4, stops["records"])
}

func TestWriteCSVReport(t *testing.T) {
	rep := buildReport("spring-batch", sampleEntries(), createTestManager(t).Stats())
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, writeReport(path, rep))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	header := rows[0]
	assert.Equal(t, "site_id", header[0])
	assert.Equal(t, "total_points", header[4])

	downtown := rows[1]
	assert.Equal(t, "downtown", downtown[0])
	assert.Equal(t, "Downtown Lofts", downtown[1])
	assert.Equal(t, "34.0522", downtown[2])
	assert.Equal(t, "7", downtown[4])
	assert.Equal(t, "ULTIMATE_FREQUENCY_QUALIFIED", downtown[7])
	assert.Equal(t, "true", downtown[8])
	assert.Equal(t, "12.5", downtown[15])

	railside := rows[2]
	assert.Equal(t, "true", railside[9])
	assert.Equal(t, "major_stop_rail", railside[10])

	// No estimate at the remote site leaves the column blank.
	remote := rows[3]
	assert.Equal(t, "", remote[15])
}

func TestWriteReportRejectsUnknownExtension(t *testing.T) {
	rep := buildReport("batch", sampleEntries(), createTestManager(t).Stats())
	assert.Error(t, checkReportPath("report.txt"))

	// writeReport itself only sees validated paths, but unknown extensions
	// fall back to JSON rather than corrupting the file.
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, writeReport(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
