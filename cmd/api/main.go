package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"transitscore.colosseumlihtc.org/internal/app"
	"transitscore.colosseumlihtc.org/internal/logging"
	"transitscore.colosseumlihtc.org/internal/refdata"
	"transitscore.colosseumlihtc.org/internal/restapi"
	"transitscore.colosseumlihtc.org/internal/scoredb"
	"transitscore.colosseumlihtc.org/internal/webui"
)

func main() {
	// .env is optional and never overrides variables already set in the shell.
	_ = godotenv.Load()

	var (
		cfg         app.Config
		dataCfg     refdata.Config
		configPath  string
		apiKeysFlag string
		gtfsFlag    string
		geojsonFlag string
		reloadFlag  time.Duration
		hqtaPath    string
		hqtsPath    string
	)

	flag.IntVar(&cfg.Port, "port", app.EnvIntOr("TRANSITSCORE_PORT", 4000), "API server port")
	flag.StringVar(&cfg.Env, "env", app.EnvOr("TRANSITSCORE_ENV", "development"), "Environment (development|production)")
	flag.StringVar(&configPath, "config", app.EnvOr("TRANSITSCORE_CONFIG", ""), "Path to a YAML config file")
	flag.StringVar(&apiKeysFlag, "api-keys", app.EnvOr("TRANSITSCORE_API_KEYS", "test"), "Comma separated API keys (* allows keyless access)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", app.EnvIntOr("TRANSITSCORE_RATE_LIMIT", 100), "Requests per second per API key")
	flag.StringVar(&cfg.DBPath, "db", app.EnvOr("TRANSITSCORE_DB", ""), "Path to the SQLite score database (empty disables run persistence)")
	flag.StringVar(&gtfsFlag, "gtfs", app.EnvOr("TRANSITSCORE_GTFS", ""), "Comma separated GTFS feeds (paths or URLs) to load stops from")
	flag.StringVar(&geojsonFlag, "stops-geojson", app.EnvOr("TRANSITSCORE_STOPS_GEOJSON", ""), "Comma separated GeoJSON stop datasets (paths or URLs)")
	flag.StringVar(&hqtaPath, "hqta", app.EnvOr("TRANSITSCORE_HQTA", ""), "HQTA boundaries GeoJSON (path or URL)")
	flag.StringVar(&hqtsPath, "hqts", app.EnvOr("TRANSITSCORE_HQTS", ""), "HQTS stop records, CSV or JSON (path or URL)")
	flag.DurationVar(&reloadFlag, "reload-interval", 0, "How often to reload reference datasets (0 disables)")
	flag.Parse()

	cfg.ApiKeys = app.SplitList(apiKeysFlag)

	dataCfg.StopSources = append(dataCfg.StopSources,
		refdata.SourcesFromPaths(refdata.SourceGTFS, app.SplitList(gtfsFlag))...)
	dataCfg.StopSources = append(dataCfg.StopSources,
		refdata.SourcesFromPaths(refdata.SourceGeoJSON, app.SplitList(geojsonFlag))...)
	dataCfg.HQTAPath = hqtaPath
	dataCfg.HQTSPath = hqtsPath
	dataCfg.ReloadInterval = reloadFlag

	logger := newLogger(cfg.Env)

	if configPath != "" {
		fileConfig, err := app.LoadFileConfig(configPath)
		if err != nil {
			logger.Error("failed to load config file", "path", configPath, "error", err)
			os.Exit(1)
		}
		fileConfig.Apply(&cfg, &dataCfg)
	}

	manager, err := refdata.NewManager(dataCfg, logger)
	if err != nil {
		logger.Error("failed to load reference datasets", "error", err)
		os.Exit(1)
	}

	application := &app.Application{
		Config:     cfg,
		DataConfig: dataCfg,
		Logger:     logger,
		RefData:    manager,
	}

	if cfg.DBPath != "" {
		dbClient, err := scoredb.NewClient(cfg.DBPath, logger)
		if err != nil {
			logger.Error("failed to open score database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		application.ScoreDB = dbClient
	}

	api := restapi.NewRestAPI(application)

	mux := http.NewServeMux()
	mux.Handle("/", api.Routes())

	if !application.IsProduction() {
		ui := webui.NewWebUI(application)
		ui.SetWebUIRoutes(mux)
		logger.Info("debug UI enabled", "path", "/debug/")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down server", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	manager.Shutdown()
	if application.ScoreDB != nil {
		logging.SafeCloseWithLogging(application.ScoreDB, logger, "score_database")
	}

	logger.Info("server stopped")
}

// newLogger writes human-readable logs in development and JSON in production.
func newLogger(env string) *slog.Logger {
	if env == "production" {
		return logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
