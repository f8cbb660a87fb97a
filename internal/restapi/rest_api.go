// Package restapi exposes the CTCAC transit scoring API over HTTP. Handlers
// parse and validate query or body parameters, ask the reference data manager
// for a score, and wrap the result in the standard response envelope.
package restapi

import (
	"net/http"
	"time"

	"transitscore.colosseumlihtc.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}
