package methods

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
)

// DecodeGeom parses a parcel geometry column: WKB hex as written by
// PostGIS, or a raw GeoJSON geometry when stored in sqlite.
func DecodeGeom(raw string) (orb.Geometry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrBadGeometry
	}
	if wkbBytes, err := hex.DecodeString(raw); err == nil {
		if geom, err := wkb.Unmarshal(wkbBytes); err == nil {
			return geom, nil
		}
	}
	g, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return nil, ErrBadGeometry
	}
	return g.Geometry(), nil
}

// GeoJSONToWKBHex encodes a feature geometry for a PostGIS geom column.
// Polygons are promoted to MultiPolygon so the column type stays uniform.
func GeoJSONToWKBHex(f geojson.Feature) string {
	if polygon, ok := f.Geometry.(orb.Polygon); ok {
		f.Geometry = orb.MultiPolygon{polygon}
	}
	data, _ := wkb.Marshal(f.Geometry)
	return hex.EncodeToString(data)
}

// ParcelFeature projects a stored parcel into a rendered geojson feature
// carrying the identifier properties the locator resolves against.
func ParcelFeature(p *models.Parcel) (*geojson.Feature, error) {
	geom, err := DecodeGeom(p.Geom)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(geom)
	f.ID = p.AccountNum
	f.Properties = map[string]interface{}{
		"account_num":   p.AccountNum,
		"geo_id":        p.GeoID,
		"situs_address": p.SitusAddress,
		"owner_name":    p.OwnerName,
		"county":        p.County,
		"total_value":   p.TotalValue,
	}
	return f, nil
}

// FeatureProperties flattens a feature for the overlay side panel.
func FeatureProperties(f *geojson.Feature) map[string]interface{} {
	props := make(map[string]interface{}, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}
	return props
}

// MakeFeatureCollection assembles raw rows (geom column + attributes) into
// a feature collection, skipping rows whose geometry does not parse.
func MakeFeatureCollection(items []map[string]interface{}) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, item := range items {
		geomStr, _ := item["geom"].(string)
		geom, err := DecodeGeom(geomStr)
		if err != nil {
			continue
		}
		feature := geojson.NewFeature(geom)
		properties := make(map[string]interface{})
		for key, value := range item {
			if key != "geom" {
				properties[key] = value
			}
		}
		feature.Properties = properties
		fc.Append(feature)
	}
	return fc
}

// BoundJSON renders a bound as [minx, miny, maxx, maxy] for clients.
func BoundJSON(b orb.Bound) json.RawMessage {
	out, _ := json.Marshal([]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]})
	return out
}
