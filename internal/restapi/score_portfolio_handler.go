package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/scoredb"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// maxPortfolioSites caps how many sites a single portfolio request may carry.
const maxPortfolioSites = 500

// scorePortfolioHandler scores every site in the posted portfolio and, when a
// score database is configured, persists the batch as a run. Persistence
// failures are logged and the scores returned anyway.
func (api *RestAPI) scorePortfolioHandler(w http.ResponseWriter, r *http.Request) {
	var request models.PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"body": {"Invalid JSON request body."},
		})
		return
	}

	fieldErrors := validatePortfolioRequest(request)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	entry := models.PortfolioEntry{
		Name:       utils.SanitizeInput(request.Name),
		TotalSites: len(request.Sites),
		Results:    make([]models.ScoreEntry, 0, len(request.Sites)),
	}

	scores := make([]scoredb.SiteScore, 0, len(request.Sites))
	for _, siteRequest := range request.Sites {
		site := models.SiteModel{
			SiteID:    utils.SanitizeInput(siteRequest.SiteID),
			Name:      utils.SanitizeInput(siteRequest.Name),
			Latitude:  *siteRequest.Latitude,
			Longitude: *siteRequest.Longitude,
		}

		result, hqta, stops := api.RefData.Score(site.Latitude, site.Longitude)
		entry.Results = append(entry.Results, models.NewScoreEntry(site, result, hqta, stops))
		if result.TransitQualified {
			entry.QualifiedSites++
		}

		scores = append(scores, scoredb.NewSiteScore(site.SiteID, site.Name, site.Latitude, site.Longitude, result, hqta))
	}

	if api.ScoreDB != nil {
		runID, err := api.persistRun(ctx, entry.Name, scores, entry.QualifiedSites)
		if err != nil {
			api.Logger.Error("failed to persist portfolio run", "error", err)
		} else {
			entry.RunID = runID
		}
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

// persistRun records a portfolio scoring batch along with a summary of the
// reference datasets that produced it.
func (api *RestAPI) persistRun(ctx context.Context, name string, scores []scoredb.SiteScore, qualifiedSites int) (string, error) {
	run, err := api.ScoreDB.CreateRun(ctx, name, "api")
	if err != nil {
		return "", err
	}

	if err := api.ScoreDB.InsertSiteScores(ctx, run.ID, scores); err != nil {
		return "", err
	}

	summary, err := json.Marshal(api.RefData.Stats())
	if err != nil {
		summary = nil
	}

	if err := api.ScoreDB.FinishRun(ctx, run.ID, len(scores), qualifiedSites, string(summary)); err != nil {
		return "", err
	}

	return run.ID, nil
}

func validatePortfolioRequest(request models.PortfolioRequest) map[string][]string {
	fieldErrors := make(map[string][]string)

	if len(request.Sites) == 0 {
		fieldErrors["sites"] = append(fieldErrors["sites"], "At least one site is required.")
		return fieldErrors
	}
	if len(request.Sites) > maxPortfolioSites {
		fieldErrors["sites"] = append(fieldErrors["sites"],
			fmt.Sprintf("Too many sites in one request (max %d).", maxPortfolioSites))
		return fieldErrors
	}

	for i, site := range request.Sites {
		latField := fmt.Sprintf("sites[%d].latitude", i)
		lonField := fmt.Sprintf("sites[%d].longitude", i)

		if site.Latitude == nil {
			fieldErrors[latField] = append(fieldErrors[latField], `Missing required field "latitude".`)
		} else if err := utils.ValidateLatitude(*site.Latitude); err != nil {
			fieldErrors[latField] = append(fieldErrors[latField], err.Error())
		}

		if site.Longitude == nil {
			fieldErrors[lonField] = append(fieldErrors[lonField], `Missing required field "longitude".`)
		} else if err := utils.ValidateLongitude(*site.Longitude); err != nil {
			fieldErrors[lonField] = append(fieldErrors[lonField], err.Error())
		}
	}

	return fieldErrors
}
