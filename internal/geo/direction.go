package geo

import "math"

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Bearing returns the initial great-circle bearing from the first point
// toward the second, in degrees clockwise from north.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// CompassDirection reduces the bearing between two points to one of the
// eight compass labels, N through NW.
func CompassDirection(lat1, lon1, lat2, lon2 float64) string {
	bearing := Bearing(lat1, lon1, lat2, lon2)
	return compassPoints[int((bearing+22.5)/45.0)%8]
}
