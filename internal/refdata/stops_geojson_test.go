package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeoJSONStops(t *testing.T) {
	payload := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [-118.25, 34.05]},
				"properties": {
					"stop_id": "s1",
					"stop_name": "Main / First",
					"n_routes": 2,
					"n_arrivals": 40,
					"calculated_frequency_minutes": 15
				}
			},
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [-118.26, 34.06]},
				"properties": {
					"stop_id": "s2",
					"stop_name": "Legacy Sentinel",
					"n_routes": 1,
					"n_arrivals": 4,
					"calculated_frequency_minutes": 999
				}
			},
			{
				"type": "Feature",
				"geometry": {"type": "LineString", "coordinates": [[-118.2, 34.0], [-118.3, 34.1]]},
				"properties": {"stop_id": "not-a-stop"}
			}
		]
	}`)

	stops, err := loadGeoJSONStops(payload)
	require.NoError(t, err)
	require.Len(t, stops, 2, "non-point features are skipped")

	s1 := stops[0]
	assert.Equal(t, "s1", s1.StopID)
	assert.Equal(t, "Main / First", s1.Name)
	assert.Equal(t, 34.05, s1.Latitude)
	assert.Equal(t, -118.25, s1.Longitude)
	assert.Equal(t, 2, s1.Routes)
	assert.Equal(t, 40, s1.DailyArrivals)
	require.NotNil(t, s1.FrequencyMinutes)
	assert.Equal(t, 15.0, *s1.FrequencyMinutes)

	assert.Nil(t, stops[1].FrequencyMinutes, "the 999 sentinel reads as unknown")
}

func TestLoadGeoJSONStopsRejectsMalformedInput(t *testing.T) {
	_, err := loadGeoJSONStops([]byte(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}

func TestNormalizeFrequency(t *testing.T) {
	valid := 25.0
	sentinel := 999.0
	huge := 1500.0
	zero := 0.0
	negative := -3.0

	require.NotNil(t, normalizeFrequency(&valid))
	assert.Equal(t, 25.0, *normalizeFrequency(&valid))
	assert.Nil(t, normalizeFrequency(nil))
	assert.Nil(t, normalizeFrequency(&sentinel))
	assert.Nil(t, normalizeFrequency(&huge))
	assert.Nil(t, normalizeFrequency(&zero))
	assert.Nil(t, normalizeFrequency(&negative))
}
