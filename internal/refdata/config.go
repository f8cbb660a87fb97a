package refdata

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Stop source kinds.
const (
	// SourceGTFS is a GTFS static feed (zip); stop service metrics are
	// derived from its schedule.
	SourceGTFS = "gtfs"
	// SourceGeoJSON is a prepared stops FeatureCollection that already
	// carries per-stop metrics.
	SourceGeoJSON = "geojson"
)

// StopSource describes one transit stop dataset to load.
type StopSource struct {
	Name string
	Kind string
	// Path is a local file path or an http(s) URL.
	Path string
}

// Config describes the reference datasets backing proximity queries.
type Config struct {
	StopSources []StopSource
	// HQTAPath points at the High Quality Transit Areas boundary
	// FeatureCollection. Empty means the dataset is absent.
	HQTAPath string
	// HQTSPath points at the High Quality Transit Stops verified peak-trips
	// dataset (CSV or JSON). Empty means the dataset is absent.
	HQTSPath string
	// ReloadInterval re-reads every configured source on a timer so a
	// long-running server picks up refreshed datasets. Zero disables
	// reloading.
	ReloadInterval time.Duration
}

// SourcesFromPaths builds stop sources of one kind from flag-style path
// lists, naming each after its file so dataset stats read well.
func SourcesFromPaths(kind string, paths []string) []StopSource {
	sources := make([]StopSource, 0, len(paths))
	for i, path := range paths {
		sources = append(sources, StopSource{
			Name: sourceName(kind, path, i),
			Kind: kind,
			Path: path,
		})
	}
	return sources
}

func sourceName(kind, path string, index int) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		return fmt.Sprintf("%s-%d", kind, index+1)
	}
	return base
}
