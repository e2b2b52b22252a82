package methods

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ErrBadGeometry marks a feature whose geometry is missing or degenerate.
// Callers skip the affected viewport or intersection work and carry on.
var ErrBadGeometry = errors.New("missing or degenerate geometry")

// FeatureBound returns the bounding box of a feature's geometry.
func FeatureBound(f *geojson.Feature) (orb.Bound, error) {
	if f == nil || f.Geometry == nil {
		return orb.Bound{}, ErrBadGeometry
	}
	b := f.Geometry.Bound()
	if b.IsEmpty() && f.Geometry.GeoJSONType() != "Point" {
		return orb.Bound{}, ErrBadGeometry
	}
	return b, nil
}

// GeometryContains reports whether the geometry covers the point.
func GeometryContains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Point:
		return geom.Equal(p)
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	case orb.Bound:
		return geom.Contains(p)
	case orb.Collection:
		for _, sub := range geom {
			if GeometryContains(sub, p) {
				return true
			}
		}
	}
	return false
}

// Centroid returns the area-weighted centroid of the geometry.
func Centroid(g orb.Geometry) (orb.Point, error) {
	if g == nil {
		return orb.Point{}, ErrBadGeometry
	}
	c, area := planar.CentroidArea(g)
	if area == 0 && g.GeoJSONType() != "Point" {
		// fall back to the bound center for degenerate rings
		b := g.Bound()
		if b.IsEmpty() {
			return orb.Point{}, ErrBadGeometry
		}
		return b.Center(), nil
	}
	return c, nil
}

// PolygonIntersects reports whether the feature geometry and the polygon
// share any boundary or interior point. A feature also counts when its
// centroid lies inside the polygon: a large parcel whose interior swallows
// the drawn polygon has no boundary crossing, but the user still covered it.
func PolygonIntersects(g orb.Geometry, poly orb.Polygon) bool {
	if g == nil || len(poly) == 0 {
		return false
	}
	if !g.Bound().Intersects(poly.Bound()) {
		return false
	}

	// any polygon vertex inside the feature
	for _, ring := range poly {
		for _, pt := range ring {
			if GeometryContains(g, pt) {
				return true
			}
		}
	}

	// any feature vertex inside the polygon
	for _, pt := range geometryVertices(g) {
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}

	// edge crossings without vertex containment
	if ringsCross(geometrySegments(g), polygonSegments(poly)) {
		return true
	}

	// centroid fallback
	if c, err := Centroid(g); err == nil {
		return planar.PolygonContains(poly, c)
	}
	return false
}

type segment struct {
	a, b orb.Point
}

func geometryVertices(g orb.Geometry) []orb.Point {
	var pts []orb.Point
	switch geom := g.(type) {
	case orb.Point:
		pts = append(pts, geom)
	case orb.LineString:
		pts = append(pts, geom...)
	case orb.Polygon:
		for _, ring := range geom {
			pts = append(pts, ring...)
		}
	case orb.MultiPolygon:
		for _, p := range geom {
			pts = append(pts, geometryVertices(p)...)
		}
	case orb.Collection:
		for _, sub := range geom {
			pts = append(pts, geometryVertices(sub)...)
		}
	}
	return pts
}

func geometrySegments(g orb.Geometry) []segment {
	var segs []segment
	switch geom := g.(type) {
	case orb.LineString:
		segs = append(segs, lineSegments(orb.Ring(geom))...)
	case orb.Polygon:
		for _, ring := range geom {
			segs = append(segs, lineSegments(ring)...)
		}
	case orb.MultiPolygon:
		for _, p := range geom {
			segs = append(segs, geometrySegments(p)...)
		}
	case orb.Collection:
		for _, sub := range geom {
			segs = append(segs, geometrySegments(sub)...)
		}
	}
	return segs
}

func polygonSegments(poly orb.Polygon) []segment {
	var segs []segment
	for _, ring := range poly {
		segs = append(segs, lineSegments(ring)...)
	}
	return segs
}

func lineSegments(ring orb.Ring) []segment {
	var segs []segment
	for i := 1; i < len(ring); i++ {
		segs = append(segs, segment{ring[i-1], ring[i]})
	}
	return segs
}

func ringsCross(a, b []segment) bool {
	for _, s1 := range a {
		for _, s2 := range b {
			if segmentsIntersect(s1, s2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(s1, s2 segment) bool {
	d1 := cross(s2.a, s2.b, s1.a)
	d2 := cross(s2.a, s2.b, s1.b)
	d3 := cross(s1.a, s1.b, s2.a)
	d4 := cross(s1.a, s1.b, s2.b)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(s2.a, s2.b, s1.a) {
		return true
	}
	if d2 == 0 && onSegment(s2.a, s2.b, s1.b) {
		return true
	}
	if d3 == 0 && onSegment(s1.a, s1.b, s2.a) {
		return true
	}
	if d4 == 0 && onSegment(s1.a, s1.b, s2.b) {
		return true
	}
	return false
}

func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
