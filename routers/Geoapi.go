package routers

import (
	"github.com/duraiaravindh/parcel-landscore/views"
	"github.com/gin-gonic/gin"
)

func GeoRouters(r *gin.Engine, UserController *views.UserController) {
	mapRouter := r.Group("/geo")
	{
		mapRouter.GET(":tablename/:z/:x/:y.pbf", UserController.OutMVT)
	}

	apiRouter := r.Group("/api")
	{
		apiRouter.GET("/details/:id", UserController.GetDetails)
		apiRouter.GET("/parcels/:id", UserController.GetParcel)
	}
	{
		apiRouter.POST("/selection/point", UserController.SelectByXY)
		apiRouter.POST("/selection/search", UserController.SelectBySearch)
		apiRouter.POST("/selection/polygon", UserController.SelectByPolygon)
		apiRouter.POST("/selection/clear", UserController.ClearSelection)
		apiRouter.GET("/selection", UserController.GetSelection)
		apiRouter.POST("/selection/restore", UserController.RestoreSelection)
	}
	{
		apiRouter.GET("/overlays", UserController.GetOverlayLayers)
		apiRouter.POST("/overlays", UserController.AddUpdateOverlayLayer)
		apiRouter.POST("/overlays/state", UserController.SetOverlayState)
	}
	{
		apiRouter.GET("/state/selected", UserController.GetSelectedID)
		apiRouter.GET("/state/viewport", UserController.GetSavedViewport)
		apiRouter.GET("/state/entered", UserController.GetEntered)
		apiRouter.POST("/state/entered", UserController.SetEntered)
	}
	{
		apiRouter.GET("/export/csv", UserController.ExportCSV)
		apiRouter.GET("/export/pdf", UserController.ExportPDF)
		apiRouter.GET("/export/busy", UserController.ExportBusy)
	}

	r.GET("/ws/highlight", UserController.HighlightWS)
}
