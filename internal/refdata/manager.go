// Package refdata loads and serves the reference datasets behind CTCAC
// transit scoring: the transit stop inventory (from GTFS feeds or prepared
// GeoJSON), High Quality Transit Area boundaries, and the High Quality
// Transit Stops verified peak-trips dataset.
//
// Loading is best-effort. A source that cannot be read or parsed logs a
// warning and is skipped; queries against a degraded manager return empty
// results rather than errors, so a scoring call always completes.
package refdata

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"transitscore.colosseumlihtc.org/internal/ctcac"
	"transitscore.colosseumlihtc.org/internal/geo"
	"transitscore.colosseumlihtc.org/internal/logging"
)

// DatasetStats describes one loaded dataset for status reporting.
type DatasetStats struct {
	Records  int       `json:"records"`
	Sources  []string  `json:"sources,omitempty"`
	Failed   []string  `json:"failed,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Stats summarizes every dataset the manager holds.
type Stats struct {
	Stops DatasetStats `json:"stops"`
	HQTA  DatasetStats `json:"hqta"`
	HQTS  DatasetStats `json:"hqts"`
}

// Manager owns the loaded reference datasets and answers the spatial
// questions scoring asks: which stops sit near a site, and whether the site
// falls inside an HQTA boundary.
type Manager struct {
	config Config
	logger *slog.Logger

	mu    sync.RWMutex
	stops []ctcac.TransitStop
	hqta  []HQTAArea
	hqts  []HQTSRecord
	stats Stats

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager loads every configured dataset and, when a reload interval is
// set, starts the background refresh goroutine. Individual datasets that
// fail to load degrade to empty; only a configuration with nothing to score
// against is an error.
func NewManager(config Config, logger *slog.Logger) (*Manager, error) {
	if len(config.StopSources) == 0 && config.HQTAPath == "" {
		return nil, errors.New("refdata: no stop sources or HQTA dataset configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	manager := &Manager{
		config:       config,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
	manager.loadAll()

	if config.ReloadInterval > 0 {
		manager.wg.Add(1)
		go manager.reloadPeriodically()
	}

	return manager, nil
}

// Shutdown stops the background reload goroutine. Safe to call repeatedly.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}

func (manager *Manager) reloadPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			manager.loadAll()
		case <-manager.shutdownChan:
			manager.logger.Info("stopping reference dataset reloads")
			return
		}
	}
}

// loadAll reads every configured source and swaps the datasets in atomically.
func (manager *Manager) loadAll() {
	start := time.Now()

	stops, stopStats := manager.loadStopSources()
	areas, hqtaStats := manager.loadHQTA()
	records, hqtsStats := manager.loadHQTS()
	enhanced := attachHQTS(stops, records)

	manager.mu.Lock()
	manager.stops = stops
	manager.hqta = areas
	manager.hqts = records
	manager.stats = Stats{Stops: stopStats, HQTA: hqtaStats, HQTS: hqtsStats}
	manager.mu.Unlock()

	logging.LogOperation(manager.logger, "reference_datasets_loaded",
		slog.Int("stops", len(stops)),
		slog.Int("hqta_areas", len(areas)),
		slog.Int("hqts_records", len(records)),
		slog.Int("hqts_enhanced_stops", enhanced),
		slog.Duration("duration", time.Since(start)))
}

func (manager *Manager) loadStopSources() ([]ctcac.TransitStop, DatasetStats) {
	stats := DatasetStats{LoadedAt: time.Now()}

	var stops []ctcac.TransitStop
	for _, source := range manager.config.StopSources {
		loaded, err := loadStopSource(source)
		if err != nil {
			manager.logger.Warn("stop source failed to load, continuing without it",
				slog.String("source", source.Name),
				slog.String("path", source.Path),
				slog.String("error", err.Error()))
			stats.Failed = append(stats.Failed, source.Name)
			continue
		}

		stops = append(stops, loaded...)
		stats.Sources = append(stats.Sources, source.Name)
	}

	stats.Records = len(stops)
	return stops, stats
}

func loadStopSource(source StopSource) ([]ctcac.TransitStop, error) {
	b, err := rawDatasetBytes(source.Path)
	if err != nil {
		return nil, err
	}

	switch source.Kind {
	case SourceGTFS:
		return loadGTFSStops(b)
	case SourceGeoJSON:
		return loadGeoJSONStops(b)
	default:
		return nil, errors.New("unknown stop source kind " + source.Kind)
	}
}

func (manager *Manager) loadHQTA() ([]HQTAArea, DatasetStats) {
	stats := DatasetStats{LoadedAt: time.Now()}
	if manager.config.HQTAPath == "" {
		return nil, stats
	}

	b, err := rawDatasetBytes(manager.config.HQTAPath)
	var areas []HQTAArea
	if err == nil {
		areas, err = loadHQTAAreas(b)
	}
	if err != nil {
		manager.logger.Warn("HQTA dataset failed to load, sites will not match HQTA polygons",
			slog.String("path", manager.config.HQTAPath),
			slog.String("error", err.Error()))
		stats.Failed = append(stats.Failed, manager.config.HQTAPath)
		return nil, stats
	}

	stats.Records = len(areas)
	stats.Sources = append(stats.Sources, manager.config.HQTAPath)
	return areas, stats
}

func (manager *Manager) loadHQTS() ([]HQTSRecord, DatasetStats) {
	stats := DatasetStats{LoadedAt: time.Now()}
	if manager.config.HQTSPath == "" {
		return nil, stats
	}

	b, err := rawDatasetBytes(manager.config.HQTSPath)
	var records []HQTSRecord
	if err == nil {
		records, err = loadHQTSRecords(b)
	}
	if err != nil {
		manager.logger.Warn("HQTS dataset failed to load, stop frequencies stay estimated",
			slog.String("path", manager.config.HQTSPath),
			slog.String("error", err.Error()))
		stats.Failed = append(stats.Failed, manager.config.HQTSPath)
		return nil, stats
	}

	stats.Records = len(records)
	stats.Sources = append(stats.Sources, manager.config.HQTSPath)
	return records, stats
}

// StopsWithin returns the stops inside radiusMeters of a point, each with
// DistanceMeters set, sorted nearest first. The bounding box prefilter keeps
// the haversine work proportional to the local stop density.
func (manager *Manager) StopsWithin(lat, lon, radiusMeters float64) []ctcac.TransitStop {
	manager.mu.RLock()
	stops := manager.stops
	manager.mu.RUnlock()

	box := geo.BoundingBox(lat, lon, radiusMeters)

	var results []ctcac.TransitStop
	for i := range stops {
		if !box.Contains(stops[i].Latitude, stops[i].Longitude) {
			continue
		}

		distance := geo.Haversine(lat, lon, stops[i].Latitude, stops[i].Longitude)
		if distance <= radiusMeters {
			stop := stops[i]
			stop.DistanceMeters = distance
			results = append(results, stop)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	return results
}

// SiteStops returns the stops inside the two CTCAC scoring radii around a
// site. The half-mile list is a superset of the third-mile list.
func (manager *Manager) SiteStops(lat, lon float64) (third, half []ctcac.TransitStop) {
	half = manager.StopsWithin(lat, lon, geo.HalfMileMeters)
	for _, stop := range half {
		if stop.DistanceMeters <= geo.ThirdMileMeters {
			third = append(third, stop)
		}
	}
	return third, half
}

// HQTAAt tests a point against the HQTA boundaries. The first containing
// area wins; the zero match means the point is outside every boundary.
func (manager *Manager) HQTAAt(lat, lon float64) ctcac.HQTAMatch {
	manager.mu.RLock()
	areas := manager.hqta
	manager.mu.RUnlock()

	for i := range areas {
		if areas[i].Boundary.Contains(lat, lon) {
			return ctcac.HQTAMatch{
				WithinHQTA:    true,
				HQTAType:      areas[i].Type,
				AgencyPrimary: areas[i].AgencyPrimary,
			}
		}
	}
	return ctcac.HQTAMatch{}
}

// Score runs the full CTCAC evaluation for a site coordinate and returns the
// result together with the HQTA match and the third-mile stops behind it.
func (manager *Manager) Score(lat, lon float64) (ctcac.ScoreResult, ctcac.HQTAMatch, []ctcac.TransitStop) {
	hqta := manager.HQTAAt(lat, lon)
	third, half := manager.SiteStops(lat, lon)
	return ctcac.ScoreSite(hqta, third, half), hqta, third
}

// Stats returns the load status of every dataset.
func (manager *Manager) Stats() Stats {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.stats
}

// Stops returns the full stop inventory, for inspection surfaces.
func (manager *Manager) Stops() []ctcac.TransitStop {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.stops
}

// HQTAAreas returns the loaded HQTA boundaries, for inspection surfaces.
func (manager *Manager) HQTAAreas() []HQTAArea {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.hqta
}

// HQTSRecords returns the loaded HQTS dataset, for inspection surfaces.
func (manager *Manager) HQTSRecords() []HQTSRecord {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.hqts
}
