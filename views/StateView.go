package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const enteredFlag = "entered"

// GetSelectedID returns the deep-link identifier mirror, read once at load.
func (uc *UserController) GetSelectedID(c *gin.Context) {
	id, ok := uc.Mirror.SelectedID()
	c.JSON(http.StatusOK, gin.H{"id": id, "set": ok})
}

// GetSavedViewport returns the persisted bbox for an identifier so a
// deep-link load can restore the viewport without geometry queries.
func (uc *UserController) GetSavedViewport(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}
	bound, ok := uc.Mirror.Viewport(id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"found": true,
		"box":   []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
	})
}

// GetEntered reports whether the one-time interstitial was dismissed.
func (uc *UserController) GetEntered(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entered": uc.Mirror.Flag(enteredFlag)})
}

// SetEntered records the interstitial dismissal.
func (uc *UserController) SetEntered(c *gin.Context) {
	uc.Mirror.SetFlag(enteredFlag, true)
	c.JSON(http.StatusOK, gin.H{"entered": true})
}
