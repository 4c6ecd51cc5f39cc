package health

import (
	"time"

	"campuschat/pkg/sdk"

	"github.com/gin-gonic/gin"
)

var (
	serviceVersion string
	startedAt      = time.Now()
)

// getStatus handles GET requests for the service health check
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("Service is healthy", gin.H{
		"version": serviceVersion,
		"uptime":  time.Since(startedAt).Round(time.Second).String(),
	}).AsGinResponse())
}
