package models

import (
	"transitscore.colosseumlihtc.org/internal/ctcac"
	"transitscore.colosseumlihtc.org/internal/geo"
)

// SiteModel identifies the location a score was computed for.
type SiteModel struct {
	SiteID    string  `json:"siteId,omitempty"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HQTAModel reports the polygon containment test for a site.
type HQTAModel struct {
	WithinHQTA    bool   `json:"withinHqta"`
	HQTAType      string `json:"hqtaType,omitempty"`
	AgencyPrimary string `json:"agencyPrimary,omitempty"`
}

// ScoreModel carries the CTCAC point award.
type ScoreModel struct {
	BasePoints          int    `json:"basePoints"`
	TiebreakerPoints    int    `json:"tiebreakerPoints"`
	TotalPoints         int    `json:"totalPoints"`
	QualificationMethod string `json:"qualificationMethod"`
	TransitQualified    bool   `json:"transitQualified"`
}

// FrequencyModel summarizes transit service at the stops behind a score.
type FrequencyModel struct {
	TotalStops                  int      `json:"totalStops"`
	TotalRoutes                 int      `json:"totalRoutes"`
	HighFrequencyStops          int      `json:"highFrequencyStops"`
	HighFrequencyValidatedStops int      `json:"highFrequencyValidatedStops"`
	HQTSEnhancedStops           int      `json:"hqtsEnhancedStops"`
	EstimatedPeakFrequency      *float64 `json:"estimatedPeakFrequency"`
}

// StopModel is one nearby transit stop in an API response.
type StopModel struct {
	StopID           string   `json:"stopId"`
	Name             string   `json:"name"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	DistanceMeters   float64  `json:"distanceMeters"`
	Direction        string   `json:"direction,omitempty"`
	Routes           int      `json:"routes"`
	DailyArrivals    int      `json:"dailyArrivals"`
	FrequencyMinutes *float64 `json:"frequencyMinutes"`
	HighFrequency    bool     `json:"highFrequency"`
	HQTSVerified     bool     `json:"hqtsVerified"`
}

// ScoreEntry is the full scoring payload for a single site.
type ScoreEntry struct {
	Site      SiteModel      `json:"site"`
	HQTA      HQTAModel      `json:"hqta"`
	Score     ScoreModel     `json:"score"`
	Frequency FrequencyModel `json:"frequency"`
	Stops     []StopModel    `json:"stops"`
}

// NewStopModel converts one scored stop into its API shape. The direction
// is the compass heading from the queried site to the stop; a stop right on
// the site has none.
func NewStopModel(stop ctcac.TransitStop, siteLat, siteLon float64) StopModel {
	direction := ""
	if stop.Latitude != siteLat || stop.Longitude != siteLon {
		direction = geo.CompassDirection(siteLat, siteLon, stop.Latitude, stop.Longitude)
	}

	return StopModel{
		StopID:           stop.StopID,
		Name:             stop.Name,
		Latitude:         stop.Latitude,
		Longitude:        stop.Longitude,
		DistanceMeters:   stop.DistanceMeters,
		Direction:        direction,
		Routes:           stop.Routes,
		DailyArrivals:    stop.DailyArrivals,
		FrequencyMinutes: stop.FrequencyMinutes,
		HighFrequency:    stop.HighFrequency(),
		HQTSVerified:     stop.Verified(),
	}
}

// NewHQTAModel converts an HQTA containment result into its API shape.
func NewHQTAModel(hqta ctcac.HQTAMatch) HQTAModel {
	return HQTAModel{
		WithinHQTA:    hqta.WithinHQTA,
		HQTAType:      hqta.HQTAType,
		AgencyPrimary: hqta.AgencyPrimary,
	}
}

// NewScoreEntry assembles the payload for one scored site.
func NewScoreEntry(site SiteModel, result ctcac.ScoreResult, hqta ctcac.HQTAMatch, stops []ctcac.TransitStop) ScoreEntry {
	stopModels := make([]StopModel, 0, len(stops))
	for _, stop := range stops {
		stopModels = append(stopModels, NewStopModel(stop, site.Latitude, site.Longitude))
	}

	return ScoreEntry{
		Site: site,
		HQTA: NewHQTAModel(hqta),
		Score: ScoreModel{
			BasePoints:          result.BasePoints,
			TiebreakerPoints:    result.TiebreakerPoints,
			TotalPoints:         result.TotalPoints,
			QualificationMethod: string(result.QualificationMethod),
			TransitQualified:    result.TransitQualified,
		},
		Frequency: FrequencyModel{
			TotalStops:                  result.Frequency.TotalStops,
			TotalRoutes:                 result.Frequency.TotalRoutes,
			HighFrequencyStops:          result.Frequency.HighFrequencyStops,
			HighFrequencyValidatedStops: result.Frequency.HighFrequencyValidatedStops,
			HQTSEnhancedStops:           result.Frequency.HQTSEnhancedStops,
			EstimatedPeakFrequency:      result.Frequency.EstimatedPeakFrequency,
		},
		Stops: stopModels,
	}
}
