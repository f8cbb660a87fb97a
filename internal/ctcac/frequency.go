package ctcac

// FrequencyAnalysis aggregates the service levels of the stops inside a
// site's scoring radius.
type FrequencyAnalysis struct {
	TotalStops int
	// TotalRoutes sums the distinct-route counts across the stops.
	TotalRoutes int
	// HighFrequencyStops counts stops at or under the 30-minute threshold.
	HighFrequencyStops int
	// HighFrequencyValidatedStops counts high-frequency stops whose service
	// level is verified by HQTS data.
	HighFrequencyValidatedStops int
	// HQTSEnhancedStops counts stops carrying HQTS data at any frequency.
	HQTSEnhancedStops int
	// EstimatedPeakFrequency is the best (minimum) peak headway in minutes
	// across the stops, nil when no stop carries frequency data.
	EstimatedPeakFrequency *float64
}

// AnalyzeFrequency computes the aggregate service picture for a stop list.
func AnalyzeFrequency(stops []TransitStop) FrequencyAnalysis {
	analysis := FrequencyAnalysis{TotalStops: len(stops)}
	for _, stop := range stops {
		analysis.TotalRoutes += stop.Routes
		if stop.Verified() {
			analysis.HQTSEnhancedStops++
		}
		if stop.HighFrequency() {
			analysis.HighFrequencyStops++
			if stop.Verified() {
				analysis.HighFrequencyValidatedStops++
			}
		}
	}
	analysis.EstimatedPeakFrequency = minFrequencyMinutes(stops)
	return analysis
}

// minFrequencyMinutes returns the smallest known peak headway across stops,
// nil when no stop has frequency data.
func minFrequencyMinutes(stops []TransitStop) *float64 {
	var best *float64
	for _, stop := range stops {
		if stop.FrequencyMinutes == nil {
			continue
		}
		if best == nil || *stop.FrequencyMinutes < *best {
			v := *stop.FrequencyMinutes
			best = &v
		}
	}
	return best
}
