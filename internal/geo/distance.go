// Package geo provides the distance and containment primitives used for
// transit proximity analysis: great-circle distance, radius bounding boxes,
// and point-in-polygon tests over GeoJSON-shaped geometry.
package geo

import "math"

const earthRadiusMeters = 6371000

// CTCAC proximity radii. The scoring methodology measures stop proximity at
// one-third mile and the tie-breaker catchment at one-half mile.
const (
	MetersPerMile   = 1609.344
	ThirdMileMeters = MetersPerMile / 3
	HalfMileMeters  = MetersPerMile / 2
)

// Haversine returns the great-circle distance between two points in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Box is an axis-aligned lat/lon bounding box.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox returns a box that encloses the circle of the given radius
// around a point. 1 degree of latitude is roughly 111km; a degree of
// longitude shrinks with the cosine of the latitude.
func BoundingBox(lat, lon, radiusMeters float64) Box {
	latDegreeInMeters := 111000.0
	lonDegreeInMeters := 111000.0 * math.Cos(lat*math.Pi/180)

	latRadiusDegrees := radiusMeters / latDegreeInMeters
	lonRadiusDegrees := radiusMeters / lonDegreeInMeters

	return Box{
		MinLat: lat - latRadiusDegrees,
		MaxLat: lat + latRadiusDegrees,
		MinLon: lon - lonRadiusDegrees,
		MaxLon: lon + lonRadiusDegrees,
	}
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

func (b Box) expand(lat, lon float64) Box {
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
	return b
}
