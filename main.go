package main

import (
	"log"
	"time"

	"github.com/duraiaravindh/parcel-landscore/config"
	"github.com/duraiaravindh/parcel-landscore/detail"
	"github.com/duraiaravindh/parcel-landscore/export"
	"github.com/duraiaravindh/parcel-landscore/highlight"
	"github.com/duraiaravindh/parcel-landscore/layers"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/duraiaravindh/parcel-landscore/pgmvt"
	"github.com/duraiaravindh/parcel-landscore/routers"
	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/duraiaravindh/parcel-landscore/state"
	"github.com/duraiaravindh/parcel-landscore/views"
	"github.com/gin-gonic/gin"
)

func main() {
	models.InitDB()
	if err := models.InitStateDB(); err != nil {
		log.Fatalf("state db init failed: %v", err)
	}

	store := layers.NewStore()
	if err := store.LoadParcelLayer(models.DB, "parcel"); err != nil {
		log.Printf("parcel layer preload failed: %v", err)
	}

	hub := views.NewHub()
	renderer := highlight.NewFeatureStateRenderer(hub)
	renderer.RegisterSource("parcels")

	mirror := state.NewGormMirror(models.StateDB)
	panel := views.NewPanelState()
	viewport := views.NewViewportState()
	client := detail.NewClient(config.DetailAPI)

	ctrl := selection.NewController(store, renderer, client, mirror, panel, viewport, mirror, selection.Options{
		Layer:       "parcel",
		Source:      "parcels",
		SourceLayer: "parcel",
	})

	// a bookmarked selection is replayed by the client through
	// POST /api/selection/restore once the page loads; fetching it here
	// would race the listener coming up
	uc := &views.UserController{
		Selection: ctrl,
		Panel:     panel,
		Viewport:  viewport,
		Renderer:  renderer,
		Mirror:    mirror,
		Layers:    store,
		Hub:       hub,
		PDF:       export.NewPDFRenderer(config.ChromeBin),
		TileCache: pgmvt.NewTileCache(config.TileCacheSize, time.Duration(config.TileCacheTTL)*time.Second),
	}

	r := gin.Default()
	routers.GeoRouters(r, uc)

	log.Printf("listening on %s", config.MainRouter)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
