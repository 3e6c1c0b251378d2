package domain

import "github.com/paulmach/orb"

// ResolveCoordinate reduces a geometry to one representative display
// coordinate:
//
//   - Point: the point itself.
//   - Polygon: arithmetic mean of the outer ring's vertices.
//   - MultiPolygon: mean of the first polygon's outer ring; the remaining
//     parts are ignored, which is accurate enough for a display centroid.
//
// Any other geometry kind, or an empty coordinate array, resolves to nothing
// and the feature is later dropped during assembly.
func ResolveCoordinate(g orb.Geometry) (Geo, bool) {
	switch geom := g.(type) {
	case orb.Point:
		return Geo{Lat: geom.Lat(), Lon: geom.Lon()}, true
	case orb.Polygon:
		if len(geom) == 0 {
			return Geo{}, false
		}
		return ringMean(geom[0])
	case orb.MultiPolygon:
		if len(geom) == 0 || len(geom[0]) == 0 {
			return Geo{}, false
		}
		return ringMean(geom[0][0])
	default:
		return Geo{}, false
	}
}

// ringMean averages longitude and latitude across a ring's vertices.
func ringMean(ring orb.Ring) (Geo, bool) {
	if len(ring) == 0 {
		return Geo{}, false
	}
	var sumLon, sumLat float64
	for _, pt := range ring {
		sumLon += pt.Lon()
		sumLat += pt.Lat()
	}
	n := float64(len(ring))
	return Geo{Lat: sumLat / n, Lon: sumLon / n}, true
}
