// Command scorer scores a CSV of candidate sites against the configured
// reference datasets and writes a portfolio report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"transitscore.colosseumlihtc.org/internal/app"
	"transitscore.colosseumlihtc.org/internal/logging"
	"transitscore.colosseumlihtc.org/internal/models"
	"transitscore.colosseumlihtc.org/internal/refdata"
	"transitscore.colosseumlihtc.org/internal/scoredb"
)

func main() {
	_ = godotenv.Load()

	var (
		dataCfg     refdata.Config
		serverCfg   app.Config
		sitesPath   string
		configPath  string
		outPath     string
		runName     string
		dbPath      string
		gtfsFlag    string
		geojsonFlag string
		hqtaPath    string
		hqtsPath    string
		throttle    time.Duration
	)

	flag.StringVar(&sitesPath, "sites", "", "Site CSV to score (site_id,name,latitude,longitude; header required)")
	flag.StringVar(&configPath, "config", app.EnvOr("TRANSITSCORE_CONFIG", ""), "Path to a YAML config file")
	flag.StringVar(&outPath, "out", "", "Report path, .json or .csv (empty writes JSON to stdout)")
	flag.StringVar(&runName, "name", "", "Run name (defaults to the sites file name)")
	flag.StringVar(&dbPath, "db", app.EnvOr("TRANSITSCORE_DB", ""), "SQLite score database to record the run in (empty skips persistence)")
	flag.StringVar(&gtfsFlag, "gtfs", app.EnvOr("TRANSITSCORE_GTFS", ""), "Comma separated GTFS feeds (paths or URLs) to load stops from")
	flag.StringVar(&geojsonFlag, "stops-geojson", app.EnvOr("TRANSITSCORE_STOPS_GEOJSON", ""), "Comma separated GeoJSON stop datasets (paths or URLs)")
	flag.StringVar(&hqtaPath, "hqta", app.EnvOr("TRANSITSCORE_HQTA", ""), "HQTA boundaries GeoJSON (path or URL)")
	flag.StringVar(&hqtsPath, "hqts", app.EnvOr("TRANSITSCORE_HQTS", ""), "HQTS stop records, CSV or JSON (path or URL)")
	flag.DurationVar(&throttle, "throttle", 0, "Delay between scoring each site")
	flag.Parse()

	// Logs go to stderr so a stdout report stays machine readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if sitesPath == "" {
		logger.Error("no sites file given, use -sites")
		os.Exit(1)
	}
	if err := checkReportPath(outPath); err != nil {
		logger.Error("unusable report path", "path", outPath, "error", err)
		os.Exit(1)
	}

	dataCfg.StopSources = append(dataCfg.StopSources,
		refdata.SourcesFromPaths(refdata.SourceGTFS, app.SplitList(gtfsFlag))...)
	dataCfg.StopSources = append(dataCfg.StopSources,
		refdata.SourcesFromPaths(refdata.SourceGeoJSON, app.SplitList(geojsonFlag))...)
	dataCfg.HQTAPath = hqtaPath
	dataCfg.HQTSPath = hqtsPath

	if configPath != "" {
		fileConfig, err := app.LoadFileConfig(configPath)
		if err != nil {
			logger.Error("failed to load config file", "path", configPath, "error", err)
			os.Exit(1)
		}
		fileConfig.Apply(&serverCfg, &dataCfg)
		if serverCfg.DBPath != "" {
			dbPath = serverCfg.DBPath
		}
	}

	sites, err := loadSites(sitesPath, logger)
	if err != nil {
		logger.Error("failed to load sites", "path", sitesPath, "error", err)
		os.Exit(1)
	}

	manager, err := refdata.NewManager(dataCfg, logger)
	if err != nil {
		logger.Error("failed to load reference datasets", "error", err)
		os.Exit(1)
	}
	defer manager.Shutdown()

	if runName == "" {
		runName = strings.TrimSuffix(filepath.Base(sitesPath), filepath.Ext(sitesPath))
	}

	entries, scores := scoreSites(manager, sites, throttle, logger)
	rep := buildReport(runName, entries, manager.Stats())

	if dbPath != "" {
		runID, err := persistRun(context.Background(), dbPath, rep, scores, manager.Stats(), logger)
		if err != nil {
			logger.Error("failed to persist run", "error", err)
		} else {
			rep.RunID = runID
		}
	}

	if err := writeReport(outPath, rep); err != nil {
		logger.Error("failed to write report", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("portfolio scored",
		"sites", rep.Summary.Sites,
		"qualified", rep.Summary.Qualified,
		"report", reportDestination(outPath),
		"runId", rep.RunID)
}

// scoreSites scores every site in order, pausing between sites when a
// throttle is set.
func scoreSites(manager *refdata.Manager, sites []models.SiteModel, throttle time.Duration, logger *slog.Logger) ([]models.ScoreEntry, []scoredb.SiteScore) {
	entries := make([]models.ScoreEntry, 0, len(sites))
	scores := make([]scoredb.SiteScore, 0, len(sites))

	for i, site := range sites {
		if throttle > 0 && i > 0 {
			time.Sleep(throttle)
		}

		result, hqta, stops := manager.Score(site.Latitude, site.Longitude)
		entries = append(entries, models.NewScoreEntry(site, result, hqta, stops))
		scores = append(scores, scoredb.NewSiteScore(site.SiteID, site.Name, site.Latitude, site.Longitude, result, hqta))

		logger.Debug("scored site",
			"siteId", site.SiteID,
			"points", result.TotalPoints,
			"method", string(result.QualificationMethod))
	}

	return entries, scores
}

// persistRun records the batch in the score database the same way the API
// does, so CLI and API runs show up in one history.
func persistRun(ctx context.Context, dbPath string, rep report, scores []scoredb.SiteScore, stats refdata.Stats, logger *slog.Logger) (string, error) {
	db, err := scoredb.NewClient(dbPath, logger)
	if err != nil {
		return "", err
	}
	defer logging.SafeCloseWithLogging(db, logger, "score_database")

	run, err := db.CreateRun(ctx, rep.Name, "cli")
	if err != nil {
		return "", err
	}
	if err := db.InsertSiteScores(ctx, run.ID, scores); err != nil {
		return "", err
	}

	summary, err := json.Marshal(stats)
	if err != nil {
		summary = nil
	}
	if err := db.FinishRun(ctx, run.ID, rep.Summary.Sites, rep.Summary.Qualified, string(summary)); err != nil {
		return "", err
	}

	return run.ID, nil
}

func reportDestination(outPath string) string {
	if outPath == "" {
		return "stdout"
	}
	return outPath
}
