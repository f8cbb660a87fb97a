// Package ctcac implements the California Tax Credit Allocation Committee
// transit scoring rules for LIHTC site analysis: base points from the
// service frequency of stops within a third of a mile (or an unconditional
// maximum for sites inside a High Quality Transit Area polygon) plus a
// tie-breaker point for exceptionally frequent service within half a mile.
//
// Scoring is a pure computation over pre-joined inputs. It performs no I/O,
// never fails, and represents missing data in-band: absent frequency data
// lands in the lowest-award branch rather than producing an error.
package ctcac

// Point awards and thresholds from the CTCAC scoring methodology.
const (
	// PointsHQTA is awarded unconditionally to sites inside a designated
	// High Quality Transit Area polygon.
	PointsHQTA = 7
	// PointsValidatedHighFrequency requires a high-frequency stop verified
	// by HQTS schedule data.
	PointsValidatedHighFrequency = 6
	// PointsEstimatedHighFrequency requires a high-frequency stop estimated
	// from schedule-derived metrics alone.
	PointsEstimatedHighFrequency = 4
	// PointsBasicService requires any stop inside the scoring radius.
	PointsBasicService = 3

	// HighFrequencyThresholdMinutes is the peak headway at or under which a
	// stop counts as high-frequency service.
	HighFrequencyThresholdMinutes = 30.0
	// TiebreakerThresholdMinutes is the half-mile peak headway at or under
	// which the tie-breaker point is awarded.
	TiebreakerThresholdMinutes = 15.0
)

// QualificationMethod identifies how a site earned, or failed to earn, its
// transit points.
type QualificationMethod string

const (
	// QualifiedByHQTA marks a site inside a High Quality Transit Area
	// polygon, which scores maximum points regardless of measured frequency.
	QualifiedByHQTA QualificationMethod = "HQTA_POLYGON_PROVEN"
	// QualifiedByFrequency marks a site that earned base points from the
	// measured service frequency of its nearby stops.
	QualifiedByFrequency QualificationMethod = "ULTIMATE_FREQUENCY_QUALIFIED"
	// NoNearbyStops marks a site with no qualifying stop inside the scoring
	// radius.
	NoNearbyStops QualificationMethod = "NO_NEARBY_STOPS"
)

// ScoreResult is the complete CTCAC transit scoring outcome for one site.
type ScoreResult struct {
	BasePoints          int
	TiebreakerPoints    int
	TotalPoints         int
	QualificationMethod QualificationMethod
	TransitQualified    bool
	// Frequency is the stop aggregation behind a frequency-based award. It
	// stays zero when the HQTA short-circuit fires, since no stop analysis
	// is performed in that case.
	Frequency FrequencyAnalysis
}

// ScoreSite scores one site from its HQTA containment result and its nearby
// stops. stopsThirdMile drives the base points; stopsHalfMile is consulted
// only for the tie-breaker. Base points, first match wins:
//
//   - site inside an HQTA polygon: 7, no tie-breaker check
//   - a validated high-frequency stop within 1/3 mile: 6
//   - an estimated high-frequency stop within 1/3 mile: 4
//   - any stop within 1/3 mile: 3
//   - otherwise: 0
//
// The tie-breaker point is added when the best peak headway among the
// half-mile stops is 15 minutes or under.
func ScoreSite(hqta HQTAMatch, stopsThirdMile, stopsHalfMile []TransitStop) ScoreResult {
	if hqta.WithinHQTA {
		return ScoreResult{
			BasePoints:          PointsHQTA,
			TotalPoints:         PointsHQTA,
			QualificationMethod: QualifiedByHQTA,
			TransitQualified:    true,
		}
	}

	analysis := AnalyzeFrequency(stopsThirdMile)

	var base int
	switch {
	case analysis.HighFrequencyValidatedStops >= 1:
		base = PointsValidatedHighFrequency
	case analysis.HighFrequencyStops >= 1:
		base = PointsEstimatedHighFrequency
	case analysis.TotalStops >= 1:
		base = PointsBasicService
	}

	tiebreaker := 0
	if best := minFrequencyMinutes(stopsHalfMile); best != nil && *best <= TiebreakerThresholdMinutes {
		tiebreaker = 1
	}

	method := NoNearbyStops
	if base > 0 {
		method = QualifiedByFrequency
	}

	total := base + tiebreaker
	return ScoreResult{
		BasePoints:          base,
		TiebreakerPoints:    tiebreaker,
		TotalPoints:         total,
		QualificationMethod: method,
		TransitQualified:    total > 0,
		Frequency:           analysis,
	}
}
