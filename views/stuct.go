package views

import (
	"github.com/duraiaravindh/parcel-landscore/export"
	"github.com/duraiaravindh/parcel-landscore/highlight"
	"github.com/duraiaravindh/parcel-landscore/layers"
	"github.com/duraiaravindh/parcel-landscore/pgmvt"
	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/duraiaravindh/parcel-landscore/state"
)

type UserController struct {
	Selection *selection.Controller
	Panel     *PanelState
	Viewport  *ViewportState
	Renderer  *highlight.FeatureStateRenderer
	Mirror    *state.GormMirror
	Layers    *layers.Store
	Hub       *Hub
	PDF       *export.PDFRenderer
	TileCache *pgmvt.TileCache
}

// layer tables the tile endpoint will serve; anything else is rejected so
// path segments never reach SQL.
var servableLayers = map[string]bool{
	"parcel":      true,
	"county":      true,
	"zoning":      true,
	"inspections": true,
	"demographic": true,
}
