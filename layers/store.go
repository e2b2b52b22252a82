// Package layers holds the rendered vector features the viewer currently
// has on screen, per layer, and answers the spatial questions selection
// needs: what is under this point, what matches this identifier, what does
// this drawn polygon cover.
package layers

import (
	"log"
	"sync"

	"github.com/duraiaravindh/parcel-landscore/methods"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"
)

type Store struct {
	mu     sync.RWMutex
	layers map[string][]*geojson.Feature
}

func NewStore() *Store {
	return &Store{layers: make(map[string][]*geojson.Feature)}
}

// ReplaceLayer swaps the rendered feature set of a layer. Rendering order is
// slice order: later features draw on top.
func (s *Store) ReplaceLayer(name string, fc *geojson.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fc == nil {
		delete(s.layers, name)
		return
	}
	s.layers[name] = fc.Features
}

// LoadParcelLayer projects all stored parcels into the named layer.
func (s *Store) LoadParcelLayer(db *gorm.DB, name string) error {
	var parcels []models.Parcel
	if err := db.Find(&parcels).Error; err != nil {
		return err
	}
	fc := geojson.NewFeatureCollection()
	for i := range parcels {
		f, err := methods.ParcelFeature(&parcels[i])
		if err != nil {
			log.Printf("skipping parcel %s: %v", parcels[i].AccountNum, err)
			continue
		}
		fc.Append(f)
	}
	s.ReplaceLayer(name, fc)
	return nil
}

// FeaturesAt returns the rendered features of the layer containing the
// point, topmost first. A layer that does not exist yet yields an empty
// result, never an error.
func (s *Store) FeaturesAt(layer string, p orb.Point) []*geojson.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	features := s.layers[layer]
	var hits []*geojson.Feature
	for i := len(features) - 1; i >= 0; i-- {
		f := features[i]
		if f.Geometry == nil || !f.Geometry.Bound().Contains(p) {
			continue
		}
		if methods.GeometryContains(f.Geometry, p) {
			hits = append(hits, f)
		}
	}
	return hits
}

// ScanIdentifier finds the first rendered feature whose identifier
// properties match text, case-insensitively. Iteration order is the render
// order; ties between features sharing the identifier are implementation
// defined.
func (s *Store) ScanIdentifier(layer string, text string) *geojson.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.layers[layer] {
		if methods.MatchesIdentifier(f, text) {
			return f
		}
	}
	return nil
}

// FeaturesIntersecting returns layer features the polygon covers: boundary
// or interior intersection, or the feature centroid inside the polygon.
func (s *Store) FeaturesIntersecting(layer string, poly orb.Polygon) []*geojson.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []*geojson.Feature
	for _, f := range s.layers[layer] {
		if f.Geometry == nil {
			continue
		}
		if methods.PolygonIntersects(f.Geometry, poly) {
			hits = append(hits, f)
		}
	}
	return hits
}

// HasLayer reports whether the layer has been rendered yet.
func (s *Store) HasLayer(layer string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.layers[layer]
	return ok
}
