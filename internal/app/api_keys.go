package app

import "net/http"

// RequestHasInvalidAPIKey checks the "key" query parameter against the
// configured API keys.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

// IsInvalidAPIKey reports whether key is missing or unknown. A configured
// key of "*" accepts every request, which keeps local development keyless.
func (app *Application) IsInvalidAPIKey(key string) bool {
	validKeys := app.Config.ApiKeys
	for _, validKey := range validKeys {
		if validKey == "*" {
			return false
		}
	}

	if key == "" {
		return true
	}

	for _, validKey := range validKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
