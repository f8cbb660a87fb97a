package ctcac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSiteInsideHQTAWinsRegardlessOfStops(t *testing.T) {
	hqta := HQTAMatch{WithinHQTA: true, HQTAType: "major_stop_brt", AgencyPrimary: "LA Metro"}
	stops := []TransitStop{{StopID: "ignored", FrequencyMinutes: freq(90)}}

	result := ScoreSite(hqta, stops, stops)

	assert.Equal(t, PointsHQTA, result.BasePoints)
	assert.Equal(t, 0, result.TiebreakerPoints)
	assert.Equal(t, 7, result.TotalPoints)
	assert.Equal(t, QualifiedByHQTA, result.QualificationMethod)
	assert.True(t, result.TransitQualified)
	assert.Equal(t, FrequencyAnalysis{}, result.Frequency, "no stop analysis runs on the HQTA path")
}

func TestScoreSiteNoStops(t *testing.T) {
	result := ScoreSite(HQTAMatch{}, nil, nil)

	assert.Equal(t, 0, result.BasePoints)
	assert.Equal(t, 0, result.TiebreakerPoints)
	assert.Equal(t, 0, result.TotalPoints)
	assert.Equal(t, NoNearbyStops, result.QualificationMethod)
	assert.False(t, result.TransitQualified)
}

func TestScoreSiteBasicService(t *testing.T) {
	third := []TransitStop{{StopID: "slow", FrequencyMinutes: freq(45)}}

	result := ScoreSite(HQTAMatch{}, third, nil)

	assert.Equal(t, PointsBasicService, result.BasePoints)
	assert.Equal(t, 0, result.TiebreakerPoints)
	assert.Equal(t, 3, result.TotalPoints)
	assert.Equal(t, QualifiedByFrequency, result.QualificationMethod)
	assert.True(t, result.TransitQualified)
}

func TestScoreSiteEstimatedHighFrequency(t *testing.T) {
	third := []TransitStop{{StopID: "fast", FrequencyMinutes: freq(20)}}

	result := ScoreSite(HQTAMatch{}, third, nil)

	assert.Equal(t, PointsEstimatedHighFrequency, result.BasePoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.Equal(t, QualifiedByFrequency, result.QualificationMethod)
}

func TestScoreSiteValidatedHighFrequencyWithTiebreaker(t *testing.T) {
	third := []TransitStop{{
		StopID:           "verified",
		FrequencyMinutes: freq(20),
		HQTS:             &HQTSEnhancement{ActualPeakTripsPerHour: 5},
	}}
	half := []TransitStop{{StopID: "express", FrequencyMinutes: freq(12)}}

	result := ScoreSite(HQTAMatch{}, third, half)

	assert.Equal(t, PointsValidatedHighFrequency, result.BasePoints)
	assert.Equal(t, 1, result.TiebreakerPoints)
	assert.Equal(t, 7, result.TotalPoints)
	assert.Equal(t, QualifiedByFrequency, result.QualificationMethod)
	assert.True(t, result.TransitQualified)
}

func TestScoreSiteStopWithoutFrequencyDataStillEarnsBasicPoints(t *testing.T) {
	third := []TransitStop{{StopID: "nodata"}}

	result := ScoreSite(HQTAMatch{}, third, nil)

	assert.Equal(t, PointsBasicService, result.BasePoints)
	assert.Nil(t, result.Frequency.EstimatedPeakFrequency)
}

func TestScoreSiteTiebreakerWithoutBasePoints(t *testing.T) {
	// A stop can sit between 1/3 and 1/2 mile: it earns no base points but
	// its headway still counts for the tie-breaker.
	half := []TransitStop{{StopID: "edge", FrequencyMinutes: freq(10)}}

	result := ScoreSite(HQTAMatch{}, nil, half)

	assert.Equal(t, 0, result.BasePoints)
	assert.Equal(t, 1, result.TiebreakerPoints)
	assert.Equal(t, 1, result.TotalPoints)
	assert.Equal(t, NoNearbyStops, result.QualificationMethod)
	assert.True(t, result.TransitQualified)
}

func TestScoreSiteTiebreakerThreshold(t *testing.T) {
	at := ScoreSite(HQTAMatch{}, nil, []TransitStop{{FrequencyMinutes: freq(15)}})
	over := ScoreSite(HQTAMatch{}, nil, []TransitStop{{FrequencyMinutes: freq(15.5)}})
	unknown := ScoreSite(HQTAMatch{}, nil, []TransitStop{{}})

	assert.Equal(t, 1, at.TiebreakerPoints)
	assert.Equal(t, 0, over.TiebreakerPoints)
	assert.Equal(t, 0, unknown.TiebreakerPoints)
}

func TestScoreSiteTiebreakerNeverChangesBasePoints(t *testing.T) {
	third := []TransitStop{{StopID: "a", FrequencyMinutes: freq(25)}}

	halfVariants := [][]TransitStop{
		nil,
		{{StopID: "b", FrequencyMinutes: freq(5)}},
		{{StopID: "c", FrequencyMinutes: freq(60)}},
		{{StopID: "d"}, {StopID: "e", FrequencyMinutes: freq(14)}},
	}

	for _, half := range halfVariants {
		result := ScoreSite(HQTAMatch{}, third, half)
		assert.Equal(t, PointsEstimatedHighFrequency, result.BasePoints)
	}
}

func TestScoreSiteAddingValidatedStopRaisesEmptyScore(t *testing.T) {
	before := ScoreSite(HQTAMatch{}, nil, nil)

	validated := TransitStop{
		StopID:           "new",
		FrequencyMinutes: freq(10),
		HQTS:             &HQTSEnhancement{ActualPeakTripsPerHour: 6},
	}
	after := ScoreSite(HQTAMatch{}, []TransitStop{validated}, nil)

	assert.Equal(t, 0, before.BasePoints)
	assert.Equal(t, PointsValidatedHighFrequency, after.BasePoints)
}

func TestScoreSiteIsDeterministic(t *testing.T) {
	hqta := HQTAMatch{}
	third := []TransitStop{
		{StopID: "a", Routes: 2, FrequencyMinutes: freq(18)},
		{StopID: "b", Routes: 1},
	}
	half := []TransitStop{{StopID: "c", FrequencyMinutes: freq(14)}}

	first := ScoreSite(hqta, third, half)
	second := ScoreSite(hqta, third, half)

	assert.Equal(t, first, second)
}

func TestScoreSiteOutputsAlwaysWellFormed(t *testing.T) {
	variants := []struct {
		name  string
		hqta  HQTAMatch
		third []TransitStop
		half  []TransitStop
	}{
		{name: "all empty"},
		{name: "hqta only", hqta: HQTAMatch{WithinHQTA: true}},
		{name: "unknown frequencies", third: []TransitStop{{}, {}, {}}},
		{name: "negative routes", third: []TransitStop{{Routes: -1}}},
		{name: "extreme headway", third: []TransitStop{{FrequencyMinutes: freq(999)}}},
		{name: "zero headway", third: []TransitStop{{FrequencyMinutes: freq(0)}}, half: []TransitStop{{FrequencyMinutes: freq(0)}}},
		{name: "half mile only", half: []TransitStop{{FrequencyMinutes: freq(3)}}},
		{
			name:  "mixed",
			third: []TransitStop{{FrequencyMinutes: freq(29), HQTS: &HQTSEnhancement{ActualPeakTripsPerHour: 4}}, {}},
			half:  []TransitStop{{FrequencyMinutes: freq(16)}},
		},
	}

	for _, tc := range variants {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreSite(tc.hqta, tc.third, tc.half)

			assert.Contains(t, []int{0, 3, 4, 6, 7}, result.BasePoints)
			assert.Contains(t, []int{0, 1}, result.TiebreakerPoints)
			assert.Equal(t, result.BasePoints+result.TiebreakerPoints, result.TotalPoints)
			assert.Equal(t, result.TotalPoints > 0, result.TransitQualified)
			assert.Contains(t,
				[]QualificationMethod{QualifiedByHQTA, QualifiedByFrequency, NoNearbyStops},
				result.QualificationMethod)
		})
	}
}
