package models

import (
	"transitscore.colosseumlihtc.org/internal/scoredb"
)

// RunModel describes one stored batch run. Times are epoch milliseconds;
// FinishedAt is zero while the run is still in progress.
type RunModel struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Source         string `json:"source,omitempty"`
	StartedAt      int64  `json:"startedAt"`
	FinishedAt     int64  `json:"finishedAt,omitempty"`
	TotalSites     int    `json:"totalSites"`
	QualifiedSites int    `json:"qualifiedSites"`
	DatasetSummary string `json:"datasetSummary,omitempty"`
}

// RunScoreModel is one stored site score inside a run payload.
type RunScoreModel struct {
	SiteID                      string   `json:"siteId,omitempty"`
	SiteName                    string   `json:"siteName,omitempty"`
	Latitude                    float64  `json:"latitude"`
	Longitude                   float64  `json:"longitude"`
	BasePoints                  int      `json:"basePoints"`
	TiebreakerPoints            int      `json:"tiebreakerPoints"`
	TotalPoints                 int      `json:"totalPoints"`
	QualificationMethod         string   `json:"qualificationMethod"`
	TransitQualified            bool     `json:"transitQualified"`
	WithinHQTA                  bool     `json:"withinHqta"`
	HQTAType                    string   `json:"hqtaType,omitempty"`
	AgencyPrimary               string   `json:"agencyPrimary,omitempty"`
	TotalStops                  int      `json:"totalStops"`
	TotalRoutes                 int      `json:"totalRoutes"`
	HighFrequencyStops          int      `json:"highFrequencyStops"`
	HighFrequencyValidatedStops int      `json:"highFrequencyValidatedStops"`
	HQTSEnhancedStops           int      `json:"hqtsEnhancedStops"`
	EstimatedPeakFrequency      *float64 `json:"estimatedPeakFrequency"`
	ScoredAt                    int64    `json:"scoredAt"`
}

// RunDetailsModel bundles a run with its stored scores.
type RunDetailsModel struct {
	Run    RunModel        `json:"run"`
	Scores []RunScoreModel `json:"scores"`
}

// NewRunModel converts a stored run into its API shape.
func NewRunModel(run scoredb.Run) RunModel {
	model := RunModel{
		ID:             run.ID,
		Name:           run.Name,
		Source:         run.Source,
		StartedAt:      run.StartedAt.UnixMilli(),
		TotalSites:     run.TotalSites,
		QualifiedSites: run.QualifiedSites,
		DatasetSummary: run.DatasetSummary,
	}
	if run.Finished() {
		model.FinishedAt = run.FinishedAt.UnixMilli()
	}
	return model
}

// NewRunScoreModel converts a stored site score into its API shape.
func NewRunScoreModel(score scoredb.SiteScore) RunScoreModel {
	return RunScoreModel{
		SiteID:                      score.SiteID,
		SiteName:                    score.SiteName,
		Latitude:                    score.Latitude,
		Longitude:                   score.Longitude,
		BasePoints:                  score.BasePoints,
		TiebreakerPoints:            score.TiebreakerPoints,
		TotalPoints:                 score.TotalPoints,
		QualificationMethod:         score.QualificationMethod,
		TransitQualified:            score.TransitQualified,
		WithinHQTA:                  score.WithinHQTA,
		HQTAType:                    score.HQTAType,
		AgencyPrimary:               score.AgencyPrimary,
		TotalStops:                  score.TotalStops,
		TotalRoutes:                 score.TotalRoutes,
		HighFrequencyStops:          score.HighFrequencyStops,
		HighFrequencyValidatedStops: score.HighFrequencyValidatedStops,
		HQTSEnhancedStops:           score.HQTSEnhancedStops,
		EstimatedPeakFrequency:      score.EstimatedPeakFrequency,
		ScoredAt:                    score.CreatedAt.UnixMilli(),
	}
}

// NewRunDetailsModel assembles a run and its scores into one payload.
func NewRunDetailsModel(run scoredb.Run, scores []scoredb.SiteScore) RunDetailsModel {
	scoreModels := make([]RunScoreModel, 0, len(scores))
	for _, score := range scores {
		scoreModels = append(scoreModels, NewRunScoreModel(score))
	}

	return RunDetailsModel{
		Run:    NewRunModel(run),
		Scores: scoreModels,
	}
}
