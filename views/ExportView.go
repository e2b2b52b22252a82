package views

import (
	"net/http"
	"path/filepath"

	"github.com/duraiaravindh/parcel-landscore/config"
	"github.com/duraiaravindh/parcel-landscore/export"
	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/gin-gonic/gin"
)

// exportDetail resolves what to export: the explicit ?id= first, falling
// back to the currently selected detail.
func (uc *UserController) exportDetail(c *gin.Context) *models.ParcelDetail {
	if id := c.Query("id"); id != "" {
		detail, err := lookupParcel(models.DB, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return nil
		}
		if detail == nil {
			detail = models.NotFoundDetail(id)
		}
		return detail
	}
	if detail := uc.Selection.Detail(); detail != nil {
		return detail
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "nothing selected"})
	return nil
}

// ExportCSV streams the flattened detail as a CSV download.
func (uc *UserController) ExportCSV(c *gin.Context) {
	detail := uc.exportDetail(c)
	if detail == nil {
		return
	}

	path, err := export.SaveCSV(config.Download, detail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ExportPDF rasterizes the styled report and returns it as a download.
// A second export while one runs gets a conflict, not a queue.
func (uc *UserController) ExportPDF(c *gin.Context) {
	detail := uc.exportDetail(c)
	if detail == nil {
		return
	}

	if uc.PDF.Busy() {
		c.JSON(http.StatusConflict, gin.H{"error": "a report export is already running"})
		return
	}

	path, err := uc.PDF.SavePDF(config.Download, detail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ExportBusy backs the transient busy indicator during long exports.
func (uc *UserController) ExportBusy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"busy": uc.PDF.Busy()})
}
