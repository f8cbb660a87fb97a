package refdata

import (
	"encoding/json"
	"fmt"

	"transitscore.colosseumlihtc.org/internal/ctcac"
)

// unknownFrequencySentinel is the legacy placeholder some prepared stop
// datasets carry for "no usable frequency data". It is normalized to an
// absent value on ingest so no comparison ever sees it.
const unknownFrequencySentinel = 999.0

// loadGeoJSONStops decodes a prepared stops FeatureCollection whose Point
// features carry pre-joined service metrics in their properties.
func loadGeoJSONStops(b []byte) ([]ctcac.TransitStop, error) {
	var fc struct {
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				StopID                     string   `json:"stop_id"`
				StopName                   string   `json:"stop_name"`
				NRoutes                    int      `json:"n_routes"`
				NArrivals                  int      `json:"n_arrivals"`
				CalculatedFrequencyMinutes *float64 `json:"calculated_frequency_minutes"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("error parsing stops GeoJSON: %w", err)
	}

	stops := make([]ctcac.TransitStop, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature.Geometry.Type != "Point" || len(feature.Geometry.Coordinates) < 2 {
			continue
		}

		stops = append(stops, ctcac.TransitStop{
			StopID:           feature.Properties.StopID,
			Name:             feature.Properties.StopName,
			Longitude:        feature.Geometry.Coordinates[0],
			Latitude:         feature.Geometry.Coordinates[1],
			Routes:           feature.Properties.NRoutes,
			DailyArrivals:    feature.Properties.NArrivals,
			FrequencyMinutes: normalizeFrequency(feature.Properties.CalculatedFrequencyMinutes),
		})
	}
	return stops, nil
}

// normalizeFrequency maps the 999 sentinel and non-positive headways to
// "unknown".
func normalizeFrequency(v *float64) *float64 {
	if v == nil || *v >= unknownFrequencySentinel || *v <= 0 {
		return nil
	}
	return v
}
