package neighborhood

import (
	"log"

	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/spatial"
)

// nearestCentroidMaxMeters bounds the fallback assignment for points
// that sit on a boundary edge and fail the containment test
const nearestCentroidMaxMeters = 500.0

// AssignNeighborhoods returns a copy of the listing table where rows
// with an empty neighborhood label are assigned one by point-in-polygon
// lookup against the boundary set. Points that no polygon contains are
// matched to the nearest boundary centroid within a small radius;
// beyond that the label stays empty.
func AssignNeighborhoods(listings []models.Listing, boundaries []models.Neighborhood) []models.Listing {
	if len(boundaries) == 0 {
		return listings
	}

	out := make([]models.Listing, len(listings))
	copy(out, listings)

	centroids := make([]spatial.Point, len(boundaries))
	for i := range boundaries {
		centroids[i] = boundaries[i].Centroid()
	}

	assigned := 0
	for i := range out {
		l := &out[i]
		if l.Neighborhood != "" || l.Latitude == nil || l.Longitude == nil {
			continue
		}

		if name := locate(*l.Latitude, *l.Longitude, boundaries, centroids); name != "" {
			l.Neighborhood = name
			assigned++
		}
	}
	if assigned > 0 {
		log.Printf("Assigned neighborhoods to %d unlabeled listings", assigned)
	}
	return out
}

func locate(lat, lon float64, boundaries []models.Neighborhood, centroids []spatial.Point) string {
	for i := range boundaries {
		if boundaries[i].Contains(lat, lon) {
			return boundaries[i].Name
		}
	}

	// Edge fallback: nearest centroid within the cutoff
	p := spatial.Point{Lat: lat, Lon: lon}
	best := ""
	bestDist := nearestCentroidMaxMeters
	for i := range centroids {
		if d := spatial.Distance(p, centroids[i]); d < bestDist {
			best, bestDist = boundaries[i].Name, d
		}
	}
	return best
}
