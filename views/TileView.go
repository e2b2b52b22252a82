package views

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/duraiaravindh/parcel-landscore/pgmvt"
	"github.com/gin-gonic/gin"
)

// OutMVT serves GET /geo/:tablename/:z/:x/:y.pbf — the vector tiles the map
// renders. The in-memory cache answers hot tiles; misses go through the
// cache table and ST_AsMVT.
func (uc *UserController) OutMVT(c *gin.Context) {
	tablename := strings.ToLower(c.Param("tablename"))
	if !servableLayers[tablename] {
		c.Status(http.StatusNotFound)
		return
	}

	z, err1 := strconv.Atoi(c.Param("z"))
	x, err2 := strconv.Atoi(c.Param("x"))
	y, err3 := strconv.Atoi(strings.TrimSuffix(c.Param("y.pbf"), ".pbf"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("%s/%d/%d/%d", tablename, z, x, y)
	if data, ok := uc.TileCache.Get(key); ok {
		writeTile(c, data)
		return
	}

	data := pgmvt.MakeMVT(x, y, z, tablename, models.DB)
	if len(data) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	uc.TileCache.Set(key, data)
	writeTile(c, data)
}

func writeTile(c *gin.Context, data []byte) {
	c.Header("Content-Type", "application/x-protobuf")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/x-protobuf", data)
}
