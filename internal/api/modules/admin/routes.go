package admin

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the admin module, all behind the
// admin guard
func RegisterRoutes(g *gin.RouterGroup, ctrl *Controller, adminGuard gin.HandlerFunc) {
	group := g.Group("/admin", adminGuard)

	group.GET("/stats", ctrl.GetStats)
}
