package refdata

import (
	"fmt"
	"time"

	"github.com/jamespfennell/gtfs"

	"transitscore.colosseumlihtc.org/internal/ctcac"
)

// CTCAC peak windows: weekday 7-9 AM and 4-6 PM.
const (
	amPeakStart = 7 * time.Hour
	amPeakEnd   = 9 * time.Hour
	pmPeakStart = 16 * time.Hour
	pmPeakEnd   = 18 * time.Hour

	peakWindowHours = 2.0
)

// loadGTFSStops parses a GTFS static feed and derives the per-stop service
// metrics scoring needs.
func loadGTFSStops(b []byte) ([]ctcac.TransitStop, error) {
	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS feed: %w", err)
	}
	return deriveStopMetrics(staticData), nil
}

type stopMetrics struct {
	routes          map[string]struct{}
	weekdayArrivals int
	amPeakArrivals  int
	pmPeakArrivals  int
}

// deriveStopMetrics walks the weekday schedule and accumulates, per stop,
// the distinct routes, daily arrivals, and peak-window arrival counts that
// turn into the estimated peak headway.
func deriveStopMetrics(staticData *gtfs.Static) []ctcac.TransitStop {
	metrics := make(map[string]*stopMetrics)

	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Service == nil || !runsOnWeekday(trip.Service) {
			continue
		}

		routeID := ""
		if trip.Route != nil {
			routeID = trip.Route.Id
		}

		for _, stopTime := range trip.StopTimes {
			if stopTime.Stop == nil {
				continue
			}

			m := metrics[stopTime.Stop.Id]
			if m == nil {
				m = &stopMetrics{routes: make(map[string]struct{})}
				metrics[stopTime.Stop.Id] = m
			}

			if routeID != "" {
				m.routes[routeID] = struct{}{}
			}
			m.weekdayArrivals++

			switch {
			case stopTime.ArrivalTime >= amPeakStart && stopTime.ArrivalTime < amPeakEnd:
				m.amPeakArrivals++
			case stopTime.ArrivalTime >= pmPeakStart && stopTime.ArrivalTime < pmPeakEnd:
				m.pmPeakArrivals++
			}
		}
	}

	stops := make([]ctcac.TransitStop, 0, len(staticData.Stops))
	for i := range staticData.Stops {
		s := &staticData.Stops[i]
		if s.Latitude == nil || s.Longitude == nil {
			continue
		}

		stop := ctcac.TransitStop{
			StopID:    s.Id,
			Name:      s.Name,
			Latitude:  *s.Latitude,
			Longitude: *s.Longitude,
		}
		if m := metrics[s.Id]; m != nil {
			stop.Routes = len(m.routes)
			stop.DailyArrivals = m.weekdayArrivals
			stop.FrequencyMinutes = peakHeadway(m)
		}
		stops = append(stops, stop)
	}
	return stops
}

// peakHeadway estimates minutes between arrivals from the busier of the two
// peak windows, nil when the stop sees no peak service.
func peakHeadway(m *stopMetrics) *float64 {
	peak := m.amPeakArrivals
	if m.pmPeakArrivals > peak {
		peak = m.pmPeakArrivals
	}
	if peak == 0 {
		return nil
	}

	tripsPerHour := float64(peak) / peakWindowHours
	headway := 60.0 / tripsPerHour
	return &headway
}

func runsOnWeekday(service *gtfs.Service) bool {
	return service.Monday || service.Tuesday || service.Wednesday ||
		service.Thursday || service.Friday
}
