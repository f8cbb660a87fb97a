package restapi

import (
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
)

// datasetsStatusHandler reports record counts, sources, and load times for the
// reference datasets currently in memory.
func (api *RestAPI) datasetsStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := models.NewDatasetStatusModel(api.RefData.Stats())

	api.sendResponse(w, r, models.NewEntryResponse(status))
}
