package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"campuschat/internal/chat"
	"campuschat/internal/ingest"
	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"
	"campuschat/pkg/sdk"
	"campuschat/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	admin_module "campuschat/internal/api/modules/admin"
	chat_module "campuschat/internal/api/modules/chat"
	health_module "campuschat/internal/api/modules/health"
	knowledge_module "campuschat/internal/api/modules/knowledge"
)

// Version is reported by the service banner and health endpoint
const Version = "1.0.0"

// Dependencies collects the services the API modules are wired with
type Dependencies struct {
	Config    *utils.Config
	Chat      *chat.Service
	Sessions  *session.Store
	Knowledge *knowledge.Store
	Processor *ingest.Processor
}

// NewEngine builds the gin engine with CORS, the 404 handler, and all
// module routes registered
func NewEngine(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	if cfg.GetBool("DEVELOPMENT") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.SetTrustedProxies(nil)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Route not found", nil).AsGinResponse())
	})

	// CORS using gin-contrib/cors (https://github.com/gin-contrib/cors)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	adminGuard := requireAPIKey(cfg.Get("SECRET_KEY"))

	baseGroup := engine.Group("/api")
	health_module.RegisterRoutes(baseGroup, Version)

	v1 := baseGroup.Group("/v1")
	chat_module.RegisterRoutes(v1, chat_module.NewController(deps.Chat, deps.Sessions, Version), adminGuard)
	knowledge_module.RegisterRoutes(v1, knowledge_module.NewController(deps.Knowledge, deps.Processor), adminGuard, cfg.GetBool("DEVELOPMENT"))
	admin_module.RegisterRoutes(v1, admin_module.NewController(deps.Sessions, deps.Knowledge), adminGuard)

	return engine
}

// Start builds the engine and serves it on the configured host and port
func Start(deps Dependencies) error {
	host := deps.Config.GetWithDefault("HOST", "0.0.0.0")
	port := deps.Config.GetWithDefault("PORT", "8000")

	engine := NewEngine(deps)

	addr := fmt.Sprintf("%s:%s", host, port)
	log.Printf("[API]: Serving on %s", addr)

	return engine.Run(addr)
}

// requireAPIKey guards admin routes with the configured secret key. With no
// key configured the admin surface stays locked.
func requireAPIKey(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || c.GetHeader("X-API-KEY") != secret {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid or missing API key", nil).AsGinResponse())
			return
		}
		c.Next()
	}
}
