package methods

import (
	"testing"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGeomGeoJSON(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`
	geom, err := DecodeGeom(raw)
	require.NoError(t, err)
	assert.Equal(t, "Polygon", geom.GeoJSONType())
}

func TestDecodeGeomWKBRoundTrip(t *testing.T) {
	f := geojson.NewFeature(square(0, 0, 1))
	raw := GeoJSONToWKBHex(*f)
	require.NotEmpty(t, raw)

	geom, err := DecodeGeom(raw)
	require.NoError(t, err)
	// polygons are promoted on encode
	assert.Equal(t, "MultiPolygon", geom.GeoJSONType())
	assert.Equal(t, square(0, 0, 1).Bound(), geom.Bound())
}

func TestDecodeGeomRejectsGarbage(t *testing.T) {
	_, err := DecodeGeom("")
	assert.ErrorIs(t, err, ErrBadGeometry)
	_, err = DecodeGeom("not a geometry")
	assert.ErrorIs(t, err, ErrBadGeometry)
}

func TestParcelFeatureCarriesIdentifiers(t *testing.T) {
	p := &models.Parcel{
		AccountNum:   "R100",
		GeoID:        "48439-001",
		SitusAddress: "100 MAIN ST",
		Geom:         `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`,
	}
	f, err := ParcelFeature(p)
	require.NoError(t, err)
	assert.Equal(t, "R100", f.ID)
	assert.Equal(t, "R100", f.Properties["account_num"])
	assert.Equal(t, "48439-001", f.Properties["geo_id"])

	p.Geom = ""
	_, err = ParcelFeature(p)
	assert.Error(t, err)
}

func TestMakeFeatureCollectionSkipsBadRows(t *testing.T) {
	fc := MakeFeatureCollection([]map[string]interface{}{
		{"geom": `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, "zone": "R-1"},
		{"geom": "broken", "zone": "R-2"},
		{"zone": "R-3"},
	})
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "R-1", fc.Features[0].Properties["zone"])
	_, hasGeom := fc.Features[0].Properties["geom"]
	assert.False(t, hasGeom, "geom column is not an attribute")
}
