package views

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duraiaravindh/parcel-landscore/detail"
	"github.com/duraiaravindh/parcel-landscore/highlight"
	"github.com/duraiaravindh/parcel-landscore/layers"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/duraiaravindh/parcel-landscore/state"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	return db
}

const testParcelGeom = `{"type":"Polygon","coordinates":[[[-97.34,32.75],[-97.33,32.75],[-97.33,32.76],[-97.34,32.76],[-97.34,32.75]]]}`

// newTestStack wires the full selection flow against in-memory databases and
// a local details API, the same shape main assembles.
func newTestStack(t *testing.T) (*UserController, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	models.DB = openTestDB(t)
	require.NoError(t, models.DB.AutoMigrate(&models.Parcel{}, &models.LandSegment{}, &models.Improvement{}))
	models.StateDB = openTestDB(t)
	require.NoError(t, models.StateDB.AutoMigrate(
		&models.SavedViewport{}, &models.SelectedState{}, &models.OverlayLayer{}, &models.ViewerFlag{},
	))

	models.DB.Create(&models.Parcel{
		AccountNum:   "R100",
		GeoID:        "48439-001",
		County:       "Tarrant",
		SitusAddress: "100 MAIN ST",
		OwnerName:    "SMITH JOHN",
		TotalValue:   200000,
		Geom:         testParcelGeom,
	})
	models.DB.Create(&models.LandSegment{AccountNum: "R100", Code: "A1", Acres: 0.25, Value: 50000})
	models.DB.Create(&models.Improvement{AccountNum: "R100", Type: "MA", YearBuilt: 1987, Value: 150000})

	store := layers.NewStore()
	require.NoError(t, store.LoadParcelLayer(models.DB, "parcel"))

	hub := NewHub()
	renderer := highlight.NewFeatureStateRenderer(hub)
	renderer.RegisterSource("parcels")

	mirror := state.NewGormMirror(models.StateDB)
	panel := NewPanelState()
	viewport := NewViewportState()

	uc := &UserController{
		Panel:    panel,
		Viewport: viewport,
		Renderer: renderer,
		Mirror:   mirror,
		Layers:   store,
		Hub:      hub,
	}

	r := gin.New()
	r.GET("/api/details/:id", uc.GetDetails)
	r.GET("/api/parcels/:id", uc.GetParcel)
	r.POST("/api/selection/point", uc.SelectByXY)
	r.POST("/api/selection/search", uc.SelectBySearch)
	r.POST("/api/selection/polygon", uc.SelectByPolygon)
	r.POST("/api/selection/clear", uc.ClearSelection)
	r.GET("/api/selection", uc.GetSelection)
	r.POST("/api/selection/restore", uc.RestoreSelection)
	r.GET("/api/overlays", uc.GetOverlayLayers)
	r.POST("/api/overlays", uc.AddUpdateOverlayLayer)
	r.POST("/api/overlays/state", uc.SetOverlayState)
	r.GET("/api/state/selected", uc.GetSelectedID)
	r.GET("/api/state/viewport", uc.GetSavedViewport)
	r.GET("/api/state/entered", uc.GetEntered)
	r.POST("/api/state/entered", uc.SetEntered)

	// selection fetches details through the same server it runs in
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	uc.Selection = selection.NewController(
		store, renderer, detail.NewClient(srv.URL), mirror, panel, viewport, mirror,
		selection.Options{Layer: "parcel", Source: "parcels", SourceLayer: "parcel"},
	)

	return uc, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestGetDetailsFoundAndNull(t *testing.T) {
	_, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/details/R100", nil)
	assert.Equal(t, http.StatusOK, code)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "R100", details["account_num"])
	assert.Len(t, details["land_segments_list"], 1)

	code, body = doJSON(t, r, http.MethodGet, "/api/details/R999", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["details"], "no match is a null record, not an error")
}

func TestGetDetailsByGeoID(t *testing.T) {
	_, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/details/48439-001", nil)
	assert.Equal(t, http.StatusOK, code)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "R100", details["account_num"])
}

func TestSelectByXYEndToEnd(t *testing.T) {
	uc, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/point",
		PointData{X: -97.335, Y: 32.755})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "R100", body["selected_id"])
	assert.Equal(t, true, body["panel_open"])
	assert.NotNil(t, body["fit_bounds"])

	// the attribute fetch resolves asynchronously
	assert.Eventually(t, func() bool {
		d := uc.Selection.Detail()
		return d != nil && d.AccountNum == "R100" && !d.NotFound
	}, 2*time.Second, 10*time.Millisecond)

	_, body = doJSON(t, r, http.MethodGet, "/api/selection", nil)
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "SMITH JOHN", details["owner_name"])
	assert.Equal(t, float64(1), body["highlight_count"], "exactly one feature highlighted")
}

func TestSelectByXYEmptyClick(t *testing.T) {
	_, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/point",
		PointData{X: 0, Y: 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no selection", body["status"])
	assert.Equal(t, false, body["panel_open"])
	assert.Nil(t, body["selected_id"])
}

func TestSelectBySearchEndToEnd(t *testing.T) {
	_, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/search",
		SearchData{Text: "R100"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "R100", details["account_num"])

	code, body = doJSON(t, r, http.MethodPost, "/api/selection/search",
		SearchData{Text: "NOPE"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "not found", body["status"])

	code, _ = doJSON(t, r, http.MethodPost, "/api/selection/search", SearchData{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSelectBySearchTransportFailure(t *testing.T) {
	uc, r := newTestStack(t)

	// details API that is already gone: every lookup is a transport failure
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	uc.Selection = selection.NewController(
		uc.Layers, uc.Renderer, detail.NewClient(dead.URL), uc.Mirror, uc.Panel, uc.Viewport, uc.Mirror,
		selection.Options{Layer: "parcel", Source: "parcels", SourceLayer: "parcel"},
	)

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/search", SearchData{Text: "R100"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "search failed", body["status"])
	assert.NotEmpty(t, body["error_message"])
}

func TestSelectByPolygonEndToEnd(t *testing.T) {
	_, r := newTestStack(t)

	payload := map[string]interface{}{"geojson": map[string]interface{}{
		"type": "Feature",
		"geometry": map[string]interface{}{
			"type": "Polygon",
			"coordinates": [][][]float64{{
				{-97.35, 32.74}, {-97.32, 32.74}, {-97.32, 32.77}, {-97.35, 32.77}, {-97.35, 32.74},
			}},
		},
		"properties": map[string]interface{}{},
	}}

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/polygon", payload)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["match_count"])
	assert.Equal(t, "1 features selected", body["status"])
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "R100", details["account_num"])
}

func TestClearSelectionEndpoint(t *testing.T) {
	_, r := newTestStack(t)

	doJSON(t, r, http.MethodPost, "/api/selection/search", SearchData{Text: "R100"})
	code, body := doJSON(t, r, http.MethodPost, "/api/selection/clear", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, false, body["panel_open"])
	assert.Nil(t, body["details"])

	_, body = doJSON(t, r, http.MethodGet, "/api/state/selected", nil)
	assert.Equal(t, false, body["set"])
}

func TestRestoreSelectionDeepLink(t *testing.T) {
	_, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodPost, "/api/selection/restore?id=R100", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "R100", body["selected_id"])
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "R100", details["account_num"])

	_, body = doJSON(t, r, http.MethodGet, "/api/state/selected", nil)
	assert.Equal(t, true, body["set"])
	assert.Equal(t, "R100", body["id"])
}

func TestOverlayEndpoints(t *testing.T) {
	_, r := newTestStack(t)

	code, _ := doJSON(t, r, http.MethodPost, "/api/overlays",
		models.OverlayLayer{Name: "zoning", TableName: "zoning", Enabled: false, Opacity: 0.4})
	require.Equal(t, http.StatusOK, code)

	code, body := doJSON(t, r, http.MethodPost, "/api/overlays/state",
		OverlayStateData{Name: "zoning", Enabled: true, Opacity: 1.7})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["Enabled"])
	assert.Equal(t, float64(1), body["Opacity"], "opacity clamps to 1")

	code, _ = doJSON(t, r, http.MethodPost, "/api/overlays/state",
		OverlayStateData{Name: "missing", Enabled: true})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEnteredFlagEndpoints(t *testing.T) {
	_, r := newTestStack(t)

	_, body := doJSON(t, r, http.MethodGet, "/api/state/entered", nil)
	assert.Equal(t, false, body["entered"])

	doJSON(t, r, http.MethodPost, "/api/state/entered", nil)
	_, body = doJSON(t, r, http.MethodGet, "/api/state/entered", nil)
	assert.Equal(t, true, body["entered"])
}

func TestSavedViewportEndpoint(t *testing.T) {
	uc, r := newTestStack(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/state/viewport?id=R100", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["found"])

	doJSON(t, r, http.MethodPost, "/api/selection/point", PointData{X: -97.335, Y: 32.755})
	assert.Eventually(t, func() bool { return uc.Selection.Detail() != nil }, 2*time.Second, 10*time.Millisecond)

	code, body = doJSON(t, r, http.MethodGet, "/api/state/viewport?id=R100", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["found"])
	box := body["box"].([]interface{})
	assert.Len(t, box, 4)

	code, _ = doJSON(t, r, http.MethodGet, "/api/state/viewport", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
