package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// Routes assembles the full HTTP handler: httprouter for dispatch, wrapped in
// the security, compression, request logging, and rate limiting middleware.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/api/score/site.json", validateAPIKey(api, api.scoreSiteHandler))
	router.Handler(http.MethodPost, "/api/score/portfolio.json", validateAPIKey(api, api.scorePortfolioHandler))
	router.Handler(http.MethodGet, "/api/stops/nearby.json", validateAPIKey(api, api.stopsNearbyHandler))
	router.Handler(http.MethodGet, "/api/hqta/check.json", validateAPIKey(api, api.hqtaCheckHandler))
	router.Handler(http.MethodGet, "/api/runs.json", validateAPIKey(api, api.runsHandler))
	router.Handler(http.MethodGet, "/api/runs/:id", validateAPIKey(api, api.runDetailsHandler))
	router.Handler(http.MethodGet, "/api/datasets/status.json", validateAPIKey(api, api.datasetsStatusHandler))

	// Liveness probe. Load balancers hit this without an API key.
	router.Handler(http.MethodGet, "/health", http.HandlerFunc(api.healthHandler))

	requestLogging := NewRequestLoggingMiddleware(api.Logger)
	compression := NewCompressionMiddleware(DefaultCompressionConfig())

	var handler http.Handler = router
	handler = api.rateLimiter(handler)
	handler = requestLogging(handler)
	handler = compression(handler)
	handler = api.WithSecurityHeaders(handler)

	return handler
}
