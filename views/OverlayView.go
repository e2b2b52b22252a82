package views

import (
	"net/http"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/gin-gonic/gin"
)

type OverlayStateData struct {
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

// GetOverlayLayers lists the configured overlays with their toggle state.
func (uc *UserController) GetOverlayLayers(c *gin.Context) {
	var rows []models.OverlayLayer
	if err := models.StateDB.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AddUpdateOverlayLayer registers or updates an overlay layer definition.
func (uc *UserController) AddUpdateOverlayLayer(c *gin.Context) {
	var row models.OverlayLayer
	if err := c.BindJSON(&row); err != nil || row.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "overlay name required"})
		return
	}

	var existing models.OverlayLayer
	if err := models.StateDB.Where("name = ?", row.Name).First(&existing).Error; err == nil {
		row.ID = existing.ID
	}
	if err := models.StateDB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

// SetOverlayState toggles an overlay's enabled flag and opacity. Opacity is
// clamped to [0, 1].
func (uc *UserController) SetOverlayState(c *gin.Context) {
	var jsonData OverlayStateData
	if err := c.BindJSON(&jsonData); err != nil || jsonData.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "overlay name required"})
		return
	}
	if jsonData.Opacity < 0 {
		jsonData.Opacity = 0
	}
	if jsonData.Opacity > 1 {
		jsonData.Opacity = 1
	}

	var row models.OverlayLayer
	if err := models.StateDB.Where("name = ?", jsonData.Name).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown overlay"})
		return
	}
	row.Enabled = jsonData.Enabled
	row.Opacity = jsonData.Opacity
	if err := models.StateDB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}
