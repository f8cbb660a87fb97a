package refdata

import (
	"encoding/json"
	"fmt"

	"transitscore.colosseumlihtc.org/internal/geo"
)

// HQTAArea is one High Quality Transit Area boundary with the attributes
// scoring reports back to callers.
type HQTAArea struct {
	Type          string
	AgencyPrimary string
	Boundary      geo.MultiPolygon
}

// loadHQTAAreas decodes an HQTA boundary FeatureCollection. Features with
// geometry other than Polygon or MultiPolygon are skipped.
func loadHQTAAreas(b []byte) ([]HQTAArea, error) {
	var fc struct {
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				HQTAType      string `json:"hqta_type"`
				AgencyPrimary string `json:"agency_primary"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("error parsing HQTA GeoJSON: %w", err)
	}

	areas := make([]HQTAArea, 0, len(fc.Features))
	for _, feature := range fc.Features {
		var boundary geo.MultiPolygon

		switch feature.Geometry.Type {
		case "Polygon":
			var coords [][][]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("error parsing HQTA polygon coordinates: %w", err)
			}
			boundary = geo.MultiPolygon{geo.PolygonFromCoords(coords)}
		case "MultiPolygon":
			var coords [][][][]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("error parsing HQTA multipolygon coordinates: %w", err)
			}
			boundary = geo.MultiPolygonFromCoords(coords)
		default:
			continue
		}

		areas = append(areas, HQTAArea{
			Type:          feature.Properties.HQTAType,
			AgencyPrimary: feature.Properties.AgencyPrimary,
			Boundary:      boundary,
		})
	}
	return areas, nil
}
