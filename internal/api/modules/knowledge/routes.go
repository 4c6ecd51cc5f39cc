package knowledge

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the knowledge module. Document
// management sits behind the admin guard; search is public. The raw debug
// search is only mounted in development mode.
func RegisterRoutes(g *gin.RouterGroup, ctrl *Controller, adminGuard gin.HandlerFunc, development bool) {
	g.GET("/search_documents", ctrl.SearchDocuments)

	admin := g.Group("/admin", adminGuard)
	admin.POST("/documents", ctrl.UploadDocument)
	admin.DELETE("/documents", ctrl.ClearDocuments)

	if development {
		g.GET("/debug/search/:query", ctrl.DebugSearch)
	}
}
