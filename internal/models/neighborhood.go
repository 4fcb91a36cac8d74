package models

import "github.com/staylens/rental-market-go/internal/spatial"

// Neighborhood represents one neighborhood boundary polygon from the
// snapshot's GeoJSON file. Polygons holds the outer ring of each
// polygon (MultiPolygon boundaries contribute one ring each).
type Neighborhood struct {
	Name     string         `json:"neighbourhood"`
	Group    string         `json:"neighbourhood_group,omitempty"`
	Polygons []spatial.Ring `json:"-"`
}

// Contains reports whether the point lies inside any of the
// neighborhood's polygons.
func (n *Neighborhood) Contains(lat, lon float64) bool {
	for _, ring := range n.Polygons {
		if ring.Contains(spatial.Point{Lat: lat, Lon: lon}) {
			return true
		}
	}
	return false
}

// Centroid returns the spherical centroid over all boundary vertices.
func (n *Neighborhood) Centroid() spatial.Point {
	var pts []spatial.Point
	for _, ring := range n.Polygons {
		pts = append(pts, ring...)
	}
	return spatial.Centroid(pts)
}
