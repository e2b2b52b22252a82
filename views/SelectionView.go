package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SearchData struct {
	Text string `json:"text"`
}

type PolygonData struct {
	Geojson *geojson.Feature `json:"geojson"`
}

// selectionResponse is what every selection operation hands back: the panel
// snapshot, the viewport fit the client should apply, and the status line.
func (uc *UserController) selectionResponse() gin.H {
	open, detail, overlays := uc.Panel.Snapshot()
	resp := gin.H{
		"status":          string(uc.Selection.Status()),
		"panel_open":      open,
		"details":         detail,
		"overlay_info":    overlays,
		"highlight_count": uc.Renderer.SelectedCount(),
	}
	if sel := uc.Selection.Current(); sel != nil {
		resp["selected_id"] = sel.ID
		resp["addressable"] = sel.Addressable
	}
	if bound, ok := uc.Viewport.Last(); ok {
		resp["fit_bounds"] = []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
	}
	if msg := uc.Selection.ErrorMessage(); msg != "" {
		resp["error_message"] = msg
	}
	return resp
}

// SelectByXY handles a map click forwarded by the client.
func (uc *UserController) SelectByXY(c *gin.Context) {
	var jsonData PointData
	if err := c.BindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	uc.Selection.SelectFromPoint(orb.Point{jsonData.X, jsonData.Y})
	c.JSON(http.StatusOK, uc.selectionResponse())
}

// SelectBySearch resolves a typed identifier or address fragment.
func (uc *UserController) SelectBySearch(c *gin.Context) {
	var jsonData SearchData
	if err := c.BindJSON(&jsonData); err != nil || jsonData.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search text required"})
		return
	}
	uc.Selection.SelectFromSearch(jsonData.Text)
	c.JSON(http.StatusOK, uc.selectionResponse())
}

// SelectByPolygon handles a completed draw-tool polygon.
func (uc *UserController) SelectByPolygon(c *gin.Context) {
	var jsonData PolygonData
	if err := c.BindJSON(&jsonData); err != nil || jsonData.Geojson == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "polygon feature required"})
		return
	}
	poly, ok := jsonData.Geojson.Geometry.(orb.Polygon)
	if !ok {
		if mp, isMulti := jsonData.Geojson.Geometry.(orb.MultiPolygon); isMulti && len(mp) > 0 {
			poly = mp[0]
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "geometry must be a polygon"})
			return
		}
	}
	count := uc.Selection.SelectFromDrawnPolygon(poly)
	resp := uc.selectionResponse()
	resp["match_count"] = count
	c.JSON(http.StatusOK, resp)
}

// ClearSelection resets the active selection, panel and URL mirror.
func (uc *UserController) ClearSelection(c *gin.Context) {
	uc.Selection.ClearSelection()
	c.JSON(http.StatusOK, uc.selectionResponse())
}

// GetSelection returns the current selection snapshot (panel refresh poll).
func (uc *UserController) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, uc.selectionResponse())
}

// RestoreSelection replays a deep-linked ?id= selection on page load.
func (uc *UserController) RestoreSelection(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		uc.Mirror.SetSelectedID(id)
	}
	uc.Selection.RestoreFromMirror()
	c.JSON(http.StatusOK, uc.selectionResponse())
}
