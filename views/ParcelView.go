package views

import (
	"errors"
	"net/http"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// lookupParcel tries the canonical account number first, then the secondary
// geo id. Absence is a nil record, not an error.
func lookupParcel(db *gorm.DB, id string) (*models.ParcelDetail, error) {
	var parcel models.Parcel
	err := db.Where("account_num = ?", id).First(&parcel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("geo_id = ?", id).First(&parcel).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var land []models.LandSegment
	if err := db.Where("account_num = ?", parcel.AccountNum).Find(&land).Error; err != nil {
		return nil, err
	}
	var improvements []models.Improvement
	if err := db.Where("account_num = ?", parcel.AccountNum).Find(&improvements).Error; err != nil {
		return nil, err
	}

	return parcel.ToDetail(land, improvements), nil
}

// GetDetails serves GET /api/details/:id. The body is always
// {"details": <record or null>}; null means no match, HTTP 200.
func (uc *UserController) GetDetails(c *gin.Context) {
	id := c.Param("id")
	detail, err := lookupParcel(models.DB, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": detail})
}

// GetParcel serves GET /api/parcels/:id, the search-path lookup. Same
// contract as GetDetails.
func (uc *UserController) GetParcel(c *gin.Context) {
	id := c.Param("id")
	detail, err := lookupParcel(models.DB, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": detail})
}
