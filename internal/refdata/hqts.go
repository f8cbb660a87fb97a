package refdata

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"transitscore.colosseumlihtc.org/internal/ctcac"
	"transitscore.colosseumlihtc.org/internal/geo"
)

// hqtsMatchRadiusMeters bounds the fallback spatial join between HQTS
// records and stops whose ids differ across source agencies.
const hqtsMatchRadiusMeters = 30.0

// HQTSRecord is one verified peak-service record from the High Quality
// Transit Stops dataset.
type HQTSRecord struct {
	StopID                 string  `json:"stop_id"`
	Agency                 string  `json:"agency"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	ActualPeakTripsPerHour int     `json:"actual_peak_trips_per_hour"`
}

// loadHQTSRecords decodes the HQTS dataset from either a JSON array or a
// headered CSV with the same field names.
func loadHQTSRecords(b []byte) ([]HQTSRecord, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []HQTSRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("error parsing HQTS JSON: %w", err)
		}
		return records, nil
	}
	return parseHQTSCSV(trimmed)
}

func parseHQTSCSV(b []byte) ([]HQTSRecord, error) {
	reader := csv.NewReader(bytes.NewReader(b))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading HQTS CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := columns["actual_peak_trips_per_hour"]; !ok {
		return nil, fmt.Errorf("HQTS CSV is missing the actual_peak_trips_per_hour column")
	}

	var records []HQTSRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading HQTS CSV row: %w", err)
		}

		record := HQTSRecord{
			StopID: csvField(row, columns, "stop_id"),
			Agency: csvField(row, columns, "agency"),
		}
		record.Latitude, _ = strconv.ParseFloat(csvField(row, columns, "latitude"), 64)
		record.Longitude, _ = strconv.ParseFloat(csvField(row, columns, "longitude"), 64)

		trips, err := strconv.Atoi(csvField(row, columns, "actual_peak_trips_per_hour"))
		if err != nil {
			continue
		}
		record.ActualPeakTripsPerHour = trips

		records = append(records, record)
	}
	return records, nil
}

func csvField(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// attachHQTS joins verified HQTS records onto stops by stop id, falling back
// to a nearest-point match within 30 meters. A match sets the stop's HQTS
// enhancement and overrides its estimated headway with the verified one.
// Returns the number of stops enhanced.
func attachHQTS(stops []ctcac.TransitStop, records []HQTSRecord) int {
	if len(stops) == 0 || len(records) == 0 {
		return 0
	}

	byID := make(map[string]*HQTSRecord, len(records))
	for i := range records {
		if records[i].StopID != "" {
			byID[records[i].StopID] = &records[i]
		}
	}

	matched := 0
	for i := range stops {
		record := byID[stops[i].StopID]
		if record == nil {
			record = nearestHQTSRecord(records, stops[i].Latitude, stops[i].Longitude)
		}
		if record == nil || record.ActualPeakTripsPerHour <= 0 {
			continue
		}

		enhancement := &ctcac.HQTSEnhancement{ActualPeakTripsPerHour: record.ActualPeakTripsPerHour}
		stops[i].HQTS = enhancement
		if headway := enhancement.HeadwayMinutes(); headway > 0 {
			stops[i].FrequencyMinutes = &headway
		}
		matched++
	}
	return matched
}

func nearestHQTSRecord(records []HQTSRecord, lat, lon float64) *HQTSRecord {
	// ~0.001 degrees is over 100m, a cheap reject before the haversine.
	const maxDegreeDelta = 0.001

	var best *HQTSRecord
	bestDistance := hqtsMatchRadiusMeters

	for i := range records {
		r := &records[i]
		if r.Latitude == 0 && r.Longitude == 0 {
			continue
		}
		if r.Latitude-lat > maxDegreeDelta || lat-r.Latitude > maxDegreeDelta ||
			r.Longitude-lon > maxDegreeDelta || lon-r.Longitude > maxDegreeDelta {
			continue
		}

		distance := geo.Haversine(lat, lon, r.Latitude, r.Longitude)
		if distance <= bestDistance {
			best = r
			bestDistance = distance
		}
	}
	return best
}
