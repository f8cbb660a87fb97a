package geo

import "math"

// Point is a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Ring is a closed sequence of points. The closing point may be present or
// omitted; containment tests treat the ring as closed either way.
type Ring []Point

// Polygon is an outer ring with optional interior holes, cached with its
// bounding box so containment checks can skip distant geometry cheaply.
type Polygon struct {
	Outer Ring
	Holes []Ring
	box   Box
}

// MultiPolygon is a set of disjoint polygons treated as one area.
type MultiPolygon []Polygon

// NewPolygon builds a Polygon and precomputes its bounding box.
func NewPolygon(outer Ring, holes ...Ring) Polygon {
	box := Box{
		MinLat: math.MaxFloat64, MaxLat: -math.MaxFloat64,
		MinLon: math.MaxFloat64, MaxLon: -math.MaxFloat64,
	}
	for _, p := range outer {
		box = box.expand(p.Lat, p.Lon)
	}
	return Polygon{Outer: outer, Holes: holes, box: box}
}

// Contains reports whether the point falls inside the polygon's outer ring
// and outside all of its holes.
func (pg Polygon) Contains(lat, lon float64) bool {
	if len(pg.Outer) < 3 {
		return false
	}
	if !pg.box.Contains(lat, lon) {
		return false
	}
	if !ringContains(pg.Outer, lat, lon) {
		return false
	}
	for _, hole := range pg.Holes {
		if ringContains(hole, lat, lon) {
			return false
		}
	}
	return true
}

// Bounds returns the polygon's precomputed bounding box.
func (pg Polygon) Bounds() Box {
	return pg.box
}

// Contains reports whether any member polygon contains the point.
func (mp MultiPolygon) Contains(lat, lon float64) bool {
	for _, pg := range mp {
		if pg.Contains(lat, lon) {
			return true
		}
	}
	return false
}

// ringContains runs the even-odd ray casting test with longitude as x and
// latitude as y.
func ringContains(ring Ring, lat, lon float64) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, xi := ring[i].Lat, ring[i].Lon
		yj, xj := ring[j].Lat, ring[j].Lon
		if (yi > lat) != (yj > lat) &&
			lon < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// PolygonFromCoords converts GeoJSON Polygon coordinates (rings of
// [longitude, latitude] pairs, outer ring first) into a Polygon. Malformed
// pairs are skipped.
func PolygonFromCoords(coords [][][]float64) Polygon {
	var outer Ring
	var holes []Ring
	for i, rawRing := range coords {
		ring := make(Ring, 0, len(rawRing))
		for _, pair := range rawRing {
			if len(pair) < 2 {
				continue
			}
			ring = append(ring, Point{Lat: pair[1], Lon: pair[0]})
		}
		if i == 0 {
			outer = ring
		} else {
			holes = append(holes, ring)
		}
	}
	return NewPolygon(outer, holes...)
}

// MultiPolygonFromCoords converts GeoJSON MultiPolygon coordinates into a
// MultiPolygon.
func MultiPolygonFromCoords(coords [][][][]float64) MultiPolygon {
	mp := make(MultiPolygon, 0, len(coords))
	for _, polyCoords := range coords {
		mp = append(mp, PolygonFromCoords(polyCoords))
	}
	return mp
}
