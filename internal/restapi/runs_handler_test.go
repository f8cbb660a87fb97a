package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitscore.colosseumlihtc.org/internal/ctcac"
	"transitscore.colosseumlihtc.org/internal/scoredb"
)

// seedRun stores a finished run with a single site score and returns its ID.
// Start times are pinned so list ordering is deterministic even when runs are
// created within the same millisecond.
func seedRun(t *testing.T, api *RestAPI, name string, startedAtMillis int64) string {
	t.Helper()

	ctx := context.Background()

	run, err := api.ScoreDB.CreateRun(ctx, name, "test")
	require.NoError(t, err)

	result := ctcac.ScoreSite(ctcac.HQTAMatch{}, nil, nil)
	score := scoredb.NewSiteScore("site-1", "Seeded Site", testSiteLat, testSiteLon, result, ctcac.HQTAMatch{})
	require.NoError(t, api.ScoreDB.InsertSiteScores(ctx, run.ID, []scoredb.SiteScore{score}))

	require.NoError(t, api.ScoreDB.FinishRun(ctx, run.ID, 1, 0, ""))

	_, err = api.ScoreDB.DB.ExecContext(ctx, "UPDATE runs SET started_at = ? WHERE id = ?", startedAtMillis, run.ID)
	require.NoError(t, err)

	return run.ID
}

func TestRunsWithoutDatabaseReturnsNotFound(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/runs.json?key=TEST")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
	assert.Equal(t, 2, model.Version)
}

func TestRunDetailsWithoutDatabaseReturnsNotFound(t *testing.T) {
	_, resp, _ := serveAndRetrieveEndpoint(t, "/api/runs/some-run.json?key=TEST")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunsListNewestFirst(t *testing.T) {
	api := createTestApiWithDB(t)

	oldest := seedRun(t, api, "first batch", 1700000000000)
	middle := seedRun(t, api, "second batch", 1700000060000)
	newest := seedRun(t, api, "third batch", 1700000120000)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/runs.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list, limitExceeded := listFromModel(t, model)
	require.Len(t, list, 3)
	assert.False(t, limitExceeded)

	ids := make([]string, 0, len(list))
	for _, item := range list {
		run, ok := item.(map[string]interface{})
		require.True(t, ok)
		ids = append(ids, run["id"].(string))
	}

	assert.Equal(t, []string{newest, middle, oldest}, ids)
}

func TestRunsListHonorsLimit(t *testing.T) {
	api := createTestApiWithDB(t)

	seedRun(t, api, "first batch", 1700000000000)
	seedRun(t, api, "second batch", 1700000060000)
	seedRun(t, api, "third batch", 1700000120000)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/runs.json?key=TEST&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list, limitExceeded := listFromModel(t, model)
	assert.Len(t, list, 2)
	assert.True(t, limitExceeded)
}

func TestRunsListRejectsBadLimit(t *testing.T) {
	api := createTestApiWithDB(t)

	resp, body := serveApiAndRetrieveRawBody(t, api, "/api/runs.json?key=TEST&limit=lots")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Invalid field value")
}

func TestRunDetails(t *testing.T) {
	api := createTestApiWithDB(t)

	runID := seedRun(t, api, "inspected batch", 1700000000000)

	resp, model := serveApiAndRetrieveEndpoint(t, api, fmt.Sprintf("/api/runs/%s.json?key=TEST", runID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	details := entryFromModel(t, model)

	run := childObject(t, details, "run")
	assert.Equal(t, runID, run["id"])
	assert.Equal(t, "inspected batch", run["name"])
	assert.EqualValues(t, 1, run["totalSites"])
	assert.EqualValues(t, 0, run["qualifiedSites"])

	scores, ok := details["scores"].([]interface{})
	require.True(t, ok)
	require.Len(t, scores, 1)

	score, ok := scores[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "site-1", score["siteId"])
	assert.Equal(t, "NO_NEARBY_STOPS", score["qualificationMethod"])
	assert.EqualValues(t, 0, score["totalPoints"])
}

func TestRunDetailsUnknownRun(t *testing.T) {
	api := createTestApiWithDB(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/runs/no-such-run.json?key=TEST")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestRunDetailsRejectsMalformedID(t *testing.T) {
	api := createTestApiWithDB(t)

	longID := strings.Repeat("a", 101)
	resp, body := serveApiAndRetrieveRawBody(t, api, "/api/runs/"+longID+".json?key=TEST")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "id too long")
}
