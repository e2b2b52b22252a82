package layers

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareFeature(id string, minX, minY, size float64) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{{
		{minX, minY},
		{minX + size, minY},
		{minX + size, minY + size},
		{minX, minY + size},
		{minX, minY},
	}})
	f.Properties["account_num"] = id
	return f
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func TestFeaturesAtTopmostFirst(t *testing.T) {
	s := NewStore()
	// overlapping parcels; the later one renders on top
	bottom := squareFeature("BOTTOM", 0, 0, 10)
	top := squareFeature("TOP", 5, 5, 10)
	s.ReplaceLayer("parcel", collection(bottom, top))

	hits := s.FeaturesAt("parcel", orb.Point{7, 7})
	require.Len(t, hits, 2)
	assert.Equal(t, "TOP", hits[0].Properties["account_num"])
	assert.Equal(t, "BOTTOM", hits[1].Properties["account_num"])
}

func TestFeaturesAtMissingLayer(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.FeaturesAt("parcel", orb.Point{0, 0}))
	assert.False(t, s.HasLayer("parcel"))
}

func TestFeaturesAtSkipsNonContaining(t *testing.T) {
	s := NewStore()
	s.ReplaceLayer("parcel", collection(squareFeature("A", 0, 0, 1)))

	assert.Empty(t, s.FeaturesAt("parcel", orb.Point{5, 5}))
	assert.Len(t, s.FeaturesAt("parcel", orb.Point{0.5, 0.5}), 1)
}

func TestScanIdentifierRenderOrder(t *testing.T) {
	s := NewStore()
	a := squareFeature("R100", 0, 0, 1)
	b := squareFeature("R100", 5, 5, 1) // duplicate identifier
	s.ReplaceLayer("parcel", collection(a, b))

	hit := s.ScanIdentifier("parcel", "r100")
	require.NotNil(t, hit)
	assert.Same(t, a, hit, "first feature in render order wins")

	assert.Nil(t, s.ScanIdentifier("parcel", "R999"))
	assert.Nil(t, s.ScanIdentifier("other", "R100"))
}

func TestFeaturesIntersecting(t *testing.T) {
	s := NewStore()
	s.ReplaceLayer("parcel", collection(
		squareFeature("IN", 0, 0, 10),
		squareFeature("OUT", 100, 100, 10),
		squareFeature("SWALLOWED", 2, 2, 1), // entirely inside the drawn shape
	))

	drawn := orb.Polygon{{{1, 1}, {20, 1}, {20, 20}, {1, 20}, {1, 1}}}
	hits := s.FeaturesIntersecting("parcel", drawn)
	require.Len(t, hits, 2)
	assert.Equal(t, "IN", hits[0].Properties["account_num"])
	assert.Equal(t, "SWALLOWED", hits[1].Properties["account_num"])
}

func TestReplaceLayerNilRemoves(t *testing.T) {
	s := NewStore()
	s.ReplaceLayer("parcel", collection(squareFeature("A", 0, 0, 1)))
	assert.True(t, s.HasLayer("parcel"))

	s.ReplaceLayer("parcel", nil)
	assert.False(t, s.HasLayer("parcel"))
}
