package spatial

import (
	"github.com/golang/geo/s2"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Ring is a closed polygon boundary. The last vertex does not need to
// repeat the first; Contains treats the ring as implicitly closed.
type Ring []Point

// Contains reports whether p lies inside the ring, using the even-odd
// ray casting rule. Points exactly on an edge may fall on either side.
func (r Ring) Contains(p Point) bool {
	if len(r) < 3 {
		return false
	}

	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		vi, vj := r[i], r[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			cross := (vj.Lon-vi.Lon)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lon
			if p.Lon < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Centroid calculates the spherical centroid of a set of points by
// averaging their unit vectors on the sphere
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sum s2.Point
	for _, p := range points {
		v := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
		sum.X += v.X
		sum.Y += v.Y
		sum.Z += v.Z
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}
