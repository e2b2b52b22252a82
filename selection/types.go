// Package selection owns "what is currently selected" on the map and
// coordinates highlight state, attribute fetches, viewport moves and the
// bookmarkable URL mirror. Collaborators are injected so the controller can
// run against fakes.
package selection

import (
	"github.com/duraiaravindh/parcel-landscore/detail"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Selection is the currently active feature. Addressable selections carry a
// stable identifier and are highlighted through map feature state; ephemeral
// ones are geometry-only and drawn into a standalone highlight source.
type Selection struct {
	ID          string
	Source      string
	SourceLayer string
	Addressable bool
	Geometry    orb.Geometry
}

type Status string

const (
	StatusReady        Status = "ready"
	StatusNoSelection  Status = "no selection"
	StatusNotFound     Status = "not found"
	StatusSearchFailed Status = "search failed"
)

// OverlayHit is one auxiliary feature found under the click point on an
// enabled overlay layer.
type OverlayHit struct {
	Overlay    string                 `json:"overlay"`
	Properties map[string]interface{} `json:"properties"`
}

// OverlayRef names an enabled overlay and the rendered layer to query.
type OverlayRef struct {
	Name  string
	Layer string
}

// Locator answers point, identifier and polygon queries against the
// currently rendered features. A missing layer yields empty results.
type Locator interface {
	FeaturesAt(layer string, p orb.Point) []*geojson.Feature
	ScanIdentifier(layer string, text string) *geojson.Feature
	FeaturesIntersecting(layer string, poly orb.Polygon) []*geojson.Feature
}

// Highlighter toggles the visual selected state. Implementations degrade to
// logged no-ops when the map style is not ready; they never fail the caller.
type Highlighter interface {
	Apply(sel *Selection)
	Release(sel *Selection)
}

// Detailer is the attribute lookup boundary (see package detail).
type Detailer interface {
	FetchDetails(id string) detail.FetchResult
	FetchParcel(id string) detail.FetchResult
}

// StateMirror persists the bookmarkable pieces of a selection: the ?id=
// query parameter equivalent and the per-identifier viewport bbox.
type StateMirror interface {
	SetSelectedID(id string)
	ClearSelectedID()
	SelectedID() (string, bool)
	SaveViewport(id string, b orb.Bound)
	Viewport(id string) (orb.Bound, bool)
}

// Panel renders the details panel. Open is called with found, not-found and
// error records alike; the record says which it is.
type Panel interface {
	Open(d *models.ParcelDetail)
	ShowOverlays(hits []OverlayHit)
	Clear()
}

// Viewport pans/zooms the map. Fit failures are swallowed by the caller.
type Viewport interface {
	FitBounds(b orb.Bound) error
}

// OverlayProvider lists the overlays currently enabled by the user.
type OverlayProvider interface {
	EnabledOverlays() []OverlayRef
}
