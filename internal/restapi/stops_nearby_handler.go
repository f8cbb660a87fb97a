package restapi

import (
	"net/http"

	"transitscore.colosseumlihtc.org/internal/geo"
	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/utils"
)

// stopsNearbyHandler lists transit stops around a coordinate, closest first.
// The radius defaults to the third-mile scoring distance when not given.
func (api *RestAPI) stopsNearbyHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)
	radius, _ := utils.ParseFloatParam(queryParams, "radius", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	locationErrors := utils.ValidateLocationParams(lat, lon, radius)
	if len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	if radius == 0 {
		radius = geo.ThirdMileMeters
	}

	stops := api.RefData.StopsWithin(lat, lon, radius)

	list := make([]models.StopModel, 0, len(stops))
	for _, stop := range stops {
		list = append(list, models.NewStopModel(stop, lat, lon))
	}

	api.sendResponse(w, r, models.NewListResponse(list, false))
}
