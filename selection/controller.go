package selection

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/duraiaravindh/parcel-landscore/detail"
	"github.com/duraiaravindh/parcel-landscore/methods"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const defaultStatusResetDelay = 2500 * time.Millisecond

// Controller is the single authority for the active selection. All state is
// behind one mutex; detail fetches run in a goroutine and re-check the
// pending token under the lock before touching the panel, so a response that
// was superseded by a faster second selection is discarded, not applied.
type Controller struct {
	mu sync.Mutex

	locator     Locator
	highlighter Highlighter
	detailer    Detailer
	mirror      StateMirror
	panel       Panel
	viewport    Viewport
	overlays    OverlayProvider

	layer       string
	source      string
	sourceLayer string

	current      *Selection
	detail       *models.ParcelDetail
	overlayInfo  []OverlayHit
	pendingToken string

	status           Status
	errMessage       string
	statusGen        int
	statusResetDelay time.Duration
}

// Options name the primary parcel layer and its tile source addressing.
type Options struct {
	Layer            string
	Source           string
	SourceLayer      string
	StatusResetDelay time.Duration
}

func NewController(locator Locator, highlighter Highlighter, detailer Detailer, mirror StateMirror, panel Panel, viewport Viewport, overlays OverlayProvider, opts Options) *Controller {
	delay := opts.StatusResetDelay
	if delay == 0 {
		delay = defaultStatusResetDelay
	}
	return &Controller{
		locator:          locator,
		highlighter:      highlighter,
		detailer:         detailer,
		mirror:           mirror,
		panel:            panel,
		viewport:         viewport,
		overlays:         overlays,
		layer:            opts.Layer,
		source:           opts.Source,
		sourceLayer:      opts.SourceLayer,
		status:           StatusReady,
		statusResetDelay: delay,
	}
}

// SelectFromPoint handles a map click. No feature under the point clears the
// selection; otherwise the topmost feature becomes the selection, its
// attributes are fetched unless the identical fetch is already pending, and
// enabled overlays at the same point populate the side info independently.
func (c *Controller) SelectFromPoint(p orb.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hits := c.locator.FeaturesAt(c.layer, p)
	overlayHits := c.collectOverlays(p)

	if len(hits) == 0 {
		c.clearLocked()
		c.overlayInfo = overlayHits
		c.panel.ShowOverlays(overlayHits)
		c.setStatus(StatusNoSelection)
		return
	}

	feature := hits[0]
	c.overlayInfo = overlayHits
	c.panel.ShowOverlays(overlayHits)

	if bound, err := methods.FeatureBound(feature); err == nil {
		if err := c.viewport.FitBounds(bound); err != nil {
			log.Printf("viewport fit skipped: %v", err)
		}
	} else {
		log.Printf("viewport fit skipped: %v", err)
	}

	id, ok := methods.ResolveIdentifier(feature)
	c.applySelection(feature, id, ok)

	if !ok {
		// geometry-only selection: nothing to fetch for
		c.pendingToken = ""
		c.detail = models.NotFoundDetail("")
		c.panel.Open(c.detail)
		c.setStatus(StatusReady)
		return
	}

	if bound, err := methods.FeatureBound(feature); err == nil {
		c.mirror.SaveViewport(id, bound)
	}

	if id == c.pendingToken {
		// duplicate click: re-open with the data already held, unless the
		// first fetch has not resolved yet
		if c.detail != nil {
			c.panel.Open(c.detail)
		}
		c.setStatus(StatusReady)
		return
	}

	c.pendingToken = id
	c.mirror.SetSelectedID(id)
	c.setStatus(StatusReady)
	go c.fetchAndApply(id)
}

// SelectFromSearch resolves free text: the server lookup first, then a scan
// of the rendered features. A transport failure surfaces as a distinct
// error status; a double data miss flashes a transient "not found" status.
// Either way the current detail is left untouched.
func (c *Controller) SelectFromSearch(text string) {
	res := c.detailer.FetchParcel(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Status == detail.Found {
		id := res.Record.AccountNum
		if id == "" {
			id = text
		}
		c.adoptSearchResult(id, res.Record, nil)
		return
	}
	if res.Status == detail.TransportError {
		log.Printf("parcel search transport failure: %s", res.Message)
		c.setStatus(StatusSearchFailed)
		c.errMessage = res.Message
		return
	}

	if f := c.locator.ScanIdentifier(c.layer, text); f != nil {
		id, ok := methods.ResolveIdentifier(f)
		if !ok {
			id = text
		}
		record := renderedDetail(id, f)
		c.adoptSearchResult(id, record, f)
		if bound, err := methods.FeatureBound(f); err == nil {
			if err := c.viewport.FitBounds(bound); err != nil {
				log.Printf("viewport fit skipped: %v", err)
			}
		}
		return
	}

	c.setTransientStatus(StatusNotFound)
}

// SelectFromDrawnPolygon selects every rendered parcel the polygon covers.
// The first match becomes the active detail straight from its rendered
// properties; no identifier fetch is made.
func (c *Controller) SelectFromDrawnPolygon(poly orb.Polygon) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	matches := c.locator.FeaturesIntersecting(c.layer, poly)
	if len(matches) == 0 {
		c.setStatus(Status("0 features selected"))
		return 0
	}

	first := matches[0]
	id, ok := methods.ResolveIdentifier(first)
	c.applySelection(first, id, ok)

	c.pendingToken = ""
	c.detail = renderedDetail(id, first)
	c.panel.Open(c.detail)
	if ok {
		c.mirror.SetSelectedID(id)
	}
	c.setStatus(Status(fmt.Sprintf("%d features selected", len(matches))))
	return len(matches)
}

// ClearSelection releases the highlight and resets detail, overlay info,
// panel, URL mirror and status.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	c.setStatus(StatusReady)
}

// RestoreFromMirror replays a deep-linked selection (?id=) on load: restore
// the saved viewport, highlight the feature if it is rendered, and fetch the
// detail. Transport failures stay silent here; this is a background path.
func (c *Controller) RestoreFromMirror() {
	id, ok := c.mirror.SelectedID()
	if !ok || id == "" {
		return
	}

	c.mu.Lock()
	if bound, found := c.mirror.Viewport(id); found {
		if err := c.viewport.FitBounds(bound); err != nil {
			log.Printf("viewport restore skipped: %v", err)
		}
	}
	if f := c.locator.ScanIdentifier(c.layer, id); f != nil {
		c.applySelection(f, id, true)
	}
	c.pendingToken = id
	c.mu.Unlock()

	c.fetchAndApply(id)
}

// Current returns the active selection, nil when nothing is selected.
func (c *Controller) Current() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Detail returns the record the panel holds, nil when nothing is selected.
func (c *Controller) Detail() *models.ParcelDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail
}

// OverlayInfo returns the overlay attribute hits from the last click.
func (c *Controller) OverlayInfo() []OverlayHit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlayInfo
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ErrorMessage returns the transport failure behind a "search failed"
// status, empty otherwise.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

// applySelection swaps the highlighted selection. The previous highlight is
// released before the next is applied so at most one stays visible.
func (c *Controller) applySelection(f *geojson.Feature, id string, addressable bool) {
	if c.current != nil {
		c.highlighter.Release(c.current)
	}
	sel := &Selection{
		ID:          id,
		Source:      c.source,
		SourceLayer: c.sourceLayer,
		Addressable: addressable,
		Geometry:    f.Geometry,
	}
	c.highlighter.Apply(sel)
	c.current = sel
}

func (c *Controller) clearLocked() {
	if c.current != nil {
		c.highlighter.Release(c.current)
		c.current = nil
	}
	c.detail = nil
	c.overlayInfo = nil
	c.pendingToken = ""
	c.panel.Clear()
	c.mirror.ClearSelectedID()
}

// fetchAndApply runs the attribute lookup and applies the outcome only when
// its identifier is still the pending token. Stale results are dropped.
func (c *Controller) fetchAndApply(id string) {
	res := c.detailer.FetchDetails(id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingToken != id {
		log.Printf("discarding stale detail result for %s", id)
		return
	}

	switch res.Status {
	case detail.Found:
		c.detail = res.Record
	case detail.NotFound:
		c.detail = models.NotFoundDetail(id)
	default:
		log.Printf("detail fetch failed for %s: %s", id, res.Message)
		c.detail = models.NotFoundDetail(id)
	}
	c.panel.Open(c.detail)
}

// adoptSearchResult installs a search hit as the active detail and mirrors
// its identifier. The rendered feature, when known, gets the highlight.
func (c *Controller) adoptSearchResult(id string, record *models.ParcelDetail, f *geojson.Feature) {
	if f != nil {
		c.applySelection(f, id, true)
	} else if c.current != nil {
		c.highlighter.Release(c.current)
		c.current = &Selection{ID: id, Source: c.source, SourceLayer: c.sourceLayer, Addressable: true}
		c.highlighter.Apply(c.current)
	} else {
		c.current = &Selection{ID: id, Source: c.source, SourceLayer: c.sourceLayer, Addressable: true}
		c.highlighter.Apply(c.current)
	}
	c.pendingToken = id
	c.detail = record
	c.panel.Open(record)
	c.mirror.SetSelectedID(id)
	c.setStatus(StatusReady)
}

// collectOverlays gathers attribute hits from enabled overlays at the point.
func (c *Controller) collectOverlays(p orb.Point) []OverlayHit {
	var hits []OverlayHit
	for _, ref := range c.overlays.EnabledOverlays() {
		for _, f := range c.locator.FeaturesAt(ref.Layer, p) {
			hits = append(hits, OverlayHit{
				Overlay:    ref.Name,
				Properties: methods.FeatureProperties(f),
			})
		}
	}
	return hits
}

// setStatus is the single write path for the status line. Every write bumps
// the generation so a pending transient reset can tell it has been
// superseded. Non-error writes also drop any held error message.
func (c *Controller) setStatus(s Status) {
	c.status = s
	c.statusGen++
	if s != StatusSearchFailed {
		c.errMessage = ""
	}
}

// setTransientStatus flashes a status and reverts to ready after the delay,
// unless another status change landed in between.
func (c *Controller) setTransientStatus(s Status) {
	c.setStatus(s)
	gen := c.statusGen
	time.AfterFunc(c.statusResetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.statusGen == gen {
			c.setStatus(StatusReady)
		}
	})
}

// renderedDetail builds a panel record from a feature's rendered properties
// when the authoritative store was not consulted.
func renderedDetail(id string, f *geojson.Feature) *models.ParcelDetail {
	d := models.NotFoundDetail(id)
	if f == nil {
		return d
	}
	d.NotFound = false
	if v, ok := f.Properties["situs_address"].(string); ok {
		d.SitusAddress = v
	}
	if v, ok := f.Properties["owner_name"].(string); ok {
		d.OwnerName = v
	}
	if v, ok := f.Properties["county"].(string); ok {
		d.County = v
	}
	if v, ok := f.Properties["geo_id"].(string); ok {
		d.GeoID = v
	}
	if v, ok := f.Properties["total_value"].(float64); ok {
		d.TotalValue = v
	}
	return d
}
