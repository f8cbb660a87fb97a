package restapi

import (
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/utils"
)

const (
	defaultRunListLimit = 20
	maxRunListLimit     = 100
)

// runsHandler lists persisted scoring runs, newest first. Responds 404 when
// the server runs without a score database.
func (api *RestAPI) runsHandler(w http.ResponseWriter, r *http.Request) {
	if api.ScoreDB == nil {
		api.sendNotFound(w, r)
		return
	}

	limit, fieldErrors := utils.ParseLimitParam(r.URL.Query(), "limit", defaultRunListLimit, maxRunListLimit, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	runs, err := api.ScoreDB.ListRuns(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	list := make([]models.RunModel, 0, len(runs))
	for _, run := range runs {
		list = append(list, models.NewRunModel(run))
	}

	api.sendResponse(w, r, models.NewListResponse(list, len(list) == limit))
}
