// Package pgmvt produces Mapbox vector tiles for the parcel layers from
// PostGIS, with a per-layer cache table and an in-memory TTL cache in front.
package pgmvt

import (
	"math"

	"github.com/paulmach/orb"
)

const hemiMapWidth = math.Pi * float64(6378137)

type Tile struct {
	Z int64
	X int64
	Y int64
}

// XyzLonLat returns the lon/lat of the northwest corner of tile (x, y, z).
func XyzLonLat(x float64, y float64, z float64) []float64 {
	n := math.Pow(2, z)
	lonDeg := (x/n)*360.0 - 180.0
	latRad := math.Atan(math.Sinh(math.Pi * (1 - (2*y)/n)))
	latDeg := (180 * latRad) / math.Pi
	return []float64{lonDeg, latDeg}
}

func lonlatToMercator(lon float64, lat float64) (float64, float64) {
	semimajorAxis := 6378137.0
	x := semimajorAxis * (math.Pi / 180) * lon
	y := semimajorAxis * math.Log(math.Tan((math.Pi/4)+((math.Pi/180)*lat/2)))
	return x, y
}

// LonLatToTile maps a coordinate to its tile address at the zoom level.
func LonLatToTile(lon, lat float64, zoom int64) (x, y int64) {
	mercX, mercY := lonlatToMercator(lon, lat)

	resolution := (2 * hemiMapWidth) / math.Exp2(float64(zoom))
	x = int64(math.Floor((mercX + hemiMapWidth) / resolution))
	y = int64(math.Floor((hemiMapWidth - mercY) / resolution))

	maxTile := int64(math.Exp2(float64(zoom))) - 1
	if x < 0 {
		x = 0
	} else if x > maxTile {
		x = maxTile
	}
	if y < 0 {
		y = 0
	} else if y > maxTile {
		y = maxTile
	}

	return
}

// Bounds enumerates every tile between zoom 6 and 18 touching the geometry
// bound. Used to invalidate cached tiles after a parcel edit.
func Bounds(geo orb.Geometry) []Tile {
	b := geo.Bound()
	if b.IsEmpty() {
		return nil
	}

	var tiles []Tile
	for zoom := int64(6); zoom <= int64(18); zoom++ {
		minX, maxY := LonLatToTile(b.Min[0], b.Min[1], zoom)
		maxX, minY := LonLatToTile(b.Max[0], b.Max[1], zoom)
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				tiles = append(tiles, Tile{Z: zoom, X: x, Y: y})
			}
		}
	}
	return tiles
}
