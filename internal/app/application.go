// Package app wires the shared application dependencies together for the
// HTTP handlers, helpers, and middleware.
package app

import (
	"log/slog"

	"transitscore.colosseumlihtc.org/internal/refdata"
	"transitscore.colosseumlihtc.org/internal/scoredb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     Config
	DataConfig refdata.Config
	Logger     *slog.Logger
	RefData    *refdata.Manager
	ScoreDB    *scoredb.Client // nil when run persistence is not configured
}

// Config holds all the configuration settings for our Application. These are
// read from command-line flags (with environment variable defaults) when the
// Application starts; a YAML file can supply or override them.
type Config struct {
	Port      int
	Env       string
	ApiKeys   []string
	RateLimit int
	DBPath    string
}

// IsProduction reports whether the application runs in the production
// environment. Debug surfaces stay off when it does.
func (app *Application) IsProduction() bool {
	return app.Config.Env == "production"
}
