package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/spatial"
)

// geoFeatureCollection mirrors the provider's neighbourhoods.geojson
type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Properties struct {
		Neighbourhood      string `json:"neighbourhood"`
		NeighbourhoodGroup string `json:"neighbourhood_group"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// LoadNeighborhoods reads a GeoJSON FeatureCollection of neighborhood
// boundary polygons. Features with unsupported geometry types are
// skipped with a log line rather than failing the load.
func LoadNeighborhoods(path string) ([]models.Neighborhood, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc geoFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var neighborhoods []models.Neighborhood
	for _, f := range fc.Features {
		n := models.Neighborhood{
			Name:  f.Properties.Neighbourhood,
			Group: f.Properties.NeighbourhoodGroup,
		}

		switch f.Geometry.Type {
		case "Polygon":
			var rings [][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &rings); err != nil {
				return nil, fmt.Errorf("invalid polygon for %q: %w", n.Name, err)
			}
			if ring := outerRing(rings); ring != nil {
				n.Polygons = append(n.Polygons, ring)
			}
		case "MultiPolygon":
			var polys [][][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &polys); err != nil {
				return nil, fmt.Errorf("invalid multipolygon for %q: %w", n.Name, err)
			}
			for _, rings := range polys {
				if ring := outerRing(rings); ring != nil {
					n.Polygons = append(n.Polygons, ring)
				}
			}
		default:
			log.Printf("Skipping %q: unsupported geometry type %s", n.Name, f.Geometry.Type)
			continue
		}

		neighborhoods = append(neighborhoods, n)
	}

	log.Printf("Loaded %d neighborhoods", len(neighborhoods))
	return neighborhoods, nil
}

// outerRing converts the first (outer) GeoJSON ring to spatial points.
// GeoJSON stores coordinates as [lon, lat] pairs.
func outerRing(rings [][][]float64) spatial.Ring {
	if len(rings) == 0 {
		return nil
	}

	ring := make(spatial.Ring, 0, len(rings[0]))
	for _, coord := range rings[0] {
		if len(coord) < 2 {
			continue
		}
		ring = append(ring, spatial.Point{Lat: coord[1], Lon: coord[0]})
	}
	if len(ring) < 3 {
		return nil
	}
	return ring
}
