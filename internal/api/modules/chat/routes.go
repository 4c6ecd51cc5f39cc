package chat

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the chat module. Session deletion
// is destructive and sits behind the admin guard; everything else is public.
func RegisterRoutes(g *gin.RouterGroup, ctrl *Controller, adminGuard gin.HandlerFunc) {
	g.GET("/", ctrl.GetBanner)
	g.POST("/chat", ctrl.PostChat)
	g.GET("/sessions/:uuid", ctrl.GetSession)
	g.DELETE("/sessions/:uuid", adminGuard, ctrl.DeleteSession)
}
