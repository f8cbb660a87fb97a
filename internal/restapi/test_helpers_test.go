package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"transitscore.colosseumlihtc.org/internal/app"
	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/refdata"
	"transitscore.colosseumlihtc.org/internal/scoredb"
)

// The test site sits in downtown Los Angeles. The first two fixture stops are
// within a third of a mile, the third within a half mile, and the fourth
// outside both rings.
const (
	testSiteLat = 34.0522
	testSiteLon = -118.2437
)

func testRefDataConfig(t *testing.T) refdata.Config {
	t.Helper()

	return refdata.Config{
		StopSources: []refdata.StopSource{
			{Name: "la-stops", Kind: refdata.SourceGeoJSON, Path: models.GetFixturePath(t, "stops.geojson")},
		},
		HQTAPath: models.GetFixturePath(t, "hqta.geojson"),
		HQTSPath: models.GetFixturePath(t, "hqts.csv"),
	}
}

func createTestApiWithRateLimit(t *testing.T, rateLimit int) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager, err := refdata.NewManager(testRefDataConfig(t), logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	testApp := &app.Application{
		Config: app.Config{
			Env:       "test",
			ApiKeys:   []string{"TEST", "test-rate-limit", "test-headers"},
			RateLimit: rateLimit,
		},
		Logger:  logger,
		RefData: manager,
	}

	return NewRestAPI(testApp)
}

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithRateLimit(t, 1000)
}

// createTestApiWithDB adds a temporary score database so the run persistence
// paths get exercised too.
func createTestApiWithDB(t *testing.T) *RestAPI {
	t.Helper()

	api := createTestApi(t)

	dbClient, err := scoredb.NewClient(filepath.Join(t.TempDir(), "scores.db"), api.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbClient.Close() })

	api.ScoreDB = dbClient
	return api
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	_ = json.NewDecoder(resp.Body).Decode(&model)

	return resp, model
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()

	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)

	return api, resp, model
}

// serveApiAndRetrieveRawBody is for responses that do not use the standard
// envelope, like validation errors.
func serveApiAndRetrieveRawBody(t *testing.T, api *RestAPI, endpoint string) (*http.Response, string) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func postApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string, payload interface{}) (*http.Response, models.ResponseModel, string) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	_ = json.Unmarshal(raw, &model)

	return resp, model, string(raw)
}

func entryFromModel(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")

	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "response data should contain an entry")

	return entry
}

func listFromModel(t *testing.T, model models.ResponseModel) ([]interface{}, bool) {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")

	list, ok := data["list"].([]interface{})
	require.True(t, ok, "response data should contain a list")

	limitExceeded, ok := data["limitExceeded"].(bool)
	require.True(t, ok, "response data should contain limitExceeded")

	return list, limitExceeded
}

func childObject(t *testing.T, parent map[string]interface{}, key string) map[string]interface{} {
	t.Helper()

	child, ok := parent[key].(map[string]interface{})
	require.True(t, ok, "expected %q to be an object", key)

	return child
}
