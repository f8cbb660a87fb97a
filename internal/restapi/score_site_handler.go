package restapi

import (
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// scoreSiteHandler scores a single development site. Required query params are
// lat and lon; siteId and name are optional labels echoed back in the entry.
func (api *RestAPI) scoreSiteHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	locationErrors := utils.ValidateLocationParams(lat, lon, 0)
	if len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	site := models.SiteModel{
		SiteID:    utils.SanitizeInput(queryParams.Get("siteId")),
		Name:      utils.SanitizeInput(queryParams.Get("name")),
		Latitude:  lat,
		Longitude: lon,
	}

	result, hqta, stops := api.RefData.Score(lat, lon)
	entry := models.NewScoreEntry(site, result, hqta, stops)

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
