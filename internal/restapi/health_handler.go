package restapi

import (
	"encoding/json"
	"net/http"
)

// healthHandler answers liveness probes. It stays off the API key requirement
// so load balancers can reach it, and reports how many stops are loaded as a
// cheap readiness signal.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := api.RefData.Stats()

	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"stops":  stats.Stops.Records,
	})
	if err != nil {
		api.Logger.Error("failed to encode health response", "error", err)
	}
}
