package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHQTACheckRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hqta/check.json?key=invalid&lat=34.11&lon=-118.29")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestHQTACheckInsidePolygon(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hqta/check.json?key=TEST&lat=34.11&lon=-118.29")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFromModel(t, model)
	assert.Equal(t, true, entry["withinHqta"])
	assert.Equal(t, "major_stop_rail", entry["hqtaType"])
	assert.Equal(t, "LA Metro", entry["agencyPrimary"])
}

func TestHQTACheckInsideMultiPolygon(t *testing.T) {
	// The bus corridor fixture is a MultiPolygon; this point is in its second ring.
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hqta/check.json?key=TEST&lat=34.25&lon=-118.51")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFromModel(t, model)
	assert.Equal(t, true, entry["withinHqta"])
	assert.Equal(t, "hq_corridor_bus", entry["hqtaType"])
	assert.Equal(t, "Big Blue Bus", entry["agencyPrimary"])
}

func TestHQTACheckOutsideEveryPolygon(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hqta/check.json?key=TEST&lat=34.0522&lon=-118.2437")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFromModel(t, model)
	assert.Equal(t, false, entry["withinHqta"])

	_, hasType := entry["hqtaType"]
	assert.False(t, hasType, "no polygon type outside an HQTA")
}

func TestHQTACheckValidation(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveRawBody(t, api, "/api/hqta/check.json?key=TEST&lat=100.0&lon=-118.29")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "latitude must be between -90 and 90")
}
