package restapi

import (
	"errors"
	"net/http"

	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/scoredb"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// runDetailsHandler returns one persisted run together with its site scores.
func (api *RestAPI) runDetailsHandler(w http.ResponseWriter, r *http.Request) {
	if api.ScoreDB == nil {
		api.sendNotFound(w, r)
		return
	}

	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	ctx := r.Context()

	run, err := api.ScoreDB.GetRun(ctx, id)
	if errors.Is(err, scoredb.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	scores, err := api.ScoreDB.ScoresForRun(ctx, run.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewRunDetailsModel(run, scores)))
}
