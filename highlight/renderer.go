// Package highlight tracks the map's "selected" visual state. Addressable
// selections toggle a boolean feature state keyed by (source, sourceLayer,
// id); ephemeral ones write a single-feature geometry source drawn as the
// highlight outline. The two paths never mix for one selection. Every change
// is published so connected map clients can mirror it.
package highlight

import (
	"log"
	"sync"

	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/paulmach/orb/geojson"
)

// StateKey addresses one feature's style state on the map.
type StateKey struct {
	Source      string `json:"source"`
	SourceLayer string `json:"sourceLayer"`
	ID          string `json:"id"`
}

// Event is one highlight mutation, as sent to map clients.
type Event struct {
	Kind     string           `json:"kind"` // "feature-state" | "ephemeral"
	Key      *StateKey        `json:"key,omitempty"`
	Selected bool             `json:"selected"`
	Geometry *geojson.Feature `json:"geometry,omitempty"`
}

// Publisher fans an event out to listeners. A nil publisher is allowed.
type Publisher interface {
	Publish(ev Event)
}

// FeatureStateRenderer implements selection.Highlighter against tracked map
// state. Sources register as they load; writes against an unknown source
// degrade to a logged no-op, matching a map whose style is still loading.
type FeatureStateRenderer struct {
	mu        sync.Mutex
	sources   map[string]bool
	states    map[StateKey]bool
	ephemeral *geojson.Feature
	publisher Publisher
}

func NewFeatureStateRenderer(publisher Publisher) *FeatureStateRenderer {
	return &FeatureStateRenderer{
		sources:   make(map[string]bool),
		states:    make(map[StateKey]bool),
		publisher: publisher,
	}
}

// RegisterSource marks a tile/geojson source as loaded. Idempotent: style
// reloads re-register sources freely.
func (r *FeatureStateRenderer) RegisterSource(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = true
}

func (r *FeatureStateRenderer) Apply(sel *selection.Selection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sel.Addressable {
		if !r.sources[sel.Source] {
			log.Printf("highlight skipped: source %q not ready", sel.Source)
			return
		}
		key := StateKey{Source: sel.Source, SourceLayer: sel.SourceLayer, ID: sel.ID}
		r.states[key] = true
		r.publish(Event{Kind: "feature-state", Key: &key, Selected: true})
		return
	}

	if sel.Geometry == nil {
		log.Printf("highlight skipped: ephemeral selection without geometry")
		return
	}
	f := geojson.NewFeature(sel.Geometry)
	r.ephemeral = f
	r.publish(Event{Kind: "ephemeral", Selected: true, Geometry: f})
}

func (r *FeatureStateRenderer) Release(sel *selection.Selection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sel.Addressable {
		key := StateKey{Source: sel.Source, SourceLayer: sel.SourceLayer, ID: sel.ID}
		if _, ok := r.states[key]; !ok {
			return
		}
		delete(r.states, key)
		r.publish(Event{Kind: "feature-state", Key: &key, Selected: false})
		return
	}

	if r.ephemeral == nil {
		return
	}
	r.ephemeral = nil
	r.publish(Event{Kind: "ephemeral", Selected: false})
}

// Selected reports whether the keyed feature currently holds the selected
// state. Used by tests and the state snapshot endpoint.
func (r *FeatureStateRenderer) Selected(key StateKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[key]
}

// SelectedCount returns how many features hold the selected state. The
// controller keeps this at zero or one.
func (r *FeatureStateRenderer) SelectedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.states)
	if r.ephemeral != nil {
		n++
	}
	return n
}

// Ephemeral returns the standalone highlight feature, nil when unset.
func (r *FeatureStateRenderer) Ephemeral() *geojson.Feature {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ephemeral
}

func (r *FeatureStateRenderer) publish(ev Event) {
	if r.publisher != nil {
		r.publisher.Publish(ev)
	}
}
