package restapi

import (
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// hqtaCheckHandler reports whether a coordinate falls inside a High Quality
// Transit Area polygon, and which one.
func (api *RestAPI) hqtaCheckHandler(w http.ResponseWriter, r *http.Request) {
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

	match := api.RefData.HQTAAt(lat, lon)

	api.sendResponse(w, r, models.NewEntryResponse(models.NewHQTAModel(match)))
}
