package views

import (
	"sync"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/paulmach/orb"
)

// PanelState implements selection.Panel as a snapshot the selection
// endpoints hand back to the web client.
type PanelState struct {
	mu       sync.Mutex
	open     bool
	detail   *models.ParcelDetail
	overlays []selection.OverlayHit
}

func NewPanelState() *PanelState {
	return &PanelState{}
}

func (p *PanelState) Open(d *models.ParcelDetail) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.detail = d
}

func (p *PanelState) ShowOverlays(hits []selection.OverlayHit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overlays = hits
}

func (p *PanelState) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.detail = nil
	p.overlays = nil
}

// Snapshot returns the current panel contents for a response body.
func (p *PanelState) Snapshot() (bool, *models.ParcelDetail, []selection.OverlayHit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open, p.detail, p.overlays
}

// ViewportState implements selection.Viewport by recording the last
// requested fit; the client applies it from the response.
type ViewportState struct {
	mu    sync.Mutex
	bound orb.Bound
	set   bool
}

func NewViewportState() *ViewportState {
	return &ViewportState{}
}

func (v *ViewportState) FitBounds(b orb.Bound) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bound = b
	v.set = true
	return nil
}

func (v *ViewportState) Last() (orb.Bound, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bound, v.set
}
