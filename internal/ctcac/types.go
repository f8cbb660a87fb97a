package ctcac

// HQTSEnhancement carries verified peak-hour service data for a stop,
// sourced from the High Quality Transit Stops dataset. Its presence upgrades
// an estimated high-frequency stop to a validated one.
type HQTSEnhancement struct {
	ActualPeakTripsPerHour int
}

// HeadwayMinutes returns the verified minutes between peak-hour trips, or 0
// when the record carries no usable trip count.
func (e HQTSEnhancement) HeadwayMinutes() float64 {
	if e.ActualPeakTripsPerHour <= 0 {
		return 0
	}
	return 60.0 / float64(e.ActualPeakTripsPerHour)
}

// TransitStop is one transit stop near a subject site, pre-joined with the
// service metrics the scoring rules consume.
type TransitStop struct {
	StopID         string
	Name           string
	Latitude       float64
	Longitude      float64
	DistanceMeters float64

	// Routes counts the distinct routes serving the stop.
	Routes int
	// DailyArrivals counts scheduled weekday arrivals, 0 when unknown.
	DailyArrivals int
	// FrequencyMinutes is the estimated minutes between peak-hour arrivals.
	// nil means no usable frequency data exists for the stop.
	FrequencyMinutes *float64
	// HQTS holds verified peak service data when the stop matched the HQTS
	// dataset.
	HQTS *HQTSEnhancement
}

// HighFrequency reports whether the stop meets the 30-minute peak headway
// threshold. Stops without frequency data never qualify.
func (s TransitStop) HighFrequency() bool {
	return s.FrequencyMinutes != nil && *s.FrequencyMinutes <= HighFrequencyThresholdMinutes
}

// Verified reports whether the stop's service level is backed by HQTS data.
func (s TransitStop) Verified() bool {
	return s.HQTS != nil
}

// HQTAMatch is the result of testing a site against the High Quality Transit
// Area boundary dataset. The zero value means no match.
type HQTAMatch struct {
	WithinHQTA    bool
	HQTAType      string
	AgencyPrimary string
}
