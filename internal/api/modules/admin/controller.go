package admin

import (
	"net/http"

	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"
	"campuschat/pkg/sdk"

	"github.com/gin-gonic/gin"
)

// Controller handles admin HTTP requests
type Controller struct {
	sessions  *session.Store
	knowledge *knowledge.Store
}

// NewController creates the admin controller
func NewController(sessions *session.Store, kb *knowledge.Store) *Controller {
	return &Controller{
		sessions:  sessions,
		knowledge: kb,
	}
}

// GetStats handles GET requests for combined usage and knowledge statistics
func (ctrl *Controller) GetStats(c *gin.Context) {
	sessionStats, err := ctrl.sessions.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to compute session statistics", err).AsGinResponse())
		return
	}

	knowledgeStats, err := ctrl.knowledge.GetStatistics(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to compute knowledge statistics", err).AsGinResponse())
		return
	}

	resp := sdk.StatsResponse{
		TotalSessions:       sessionStats.TotalSessions,
		ActiveSessions:      sessionStats.ActiveSessions,
		SessionsToday:       sessionStats.SessionsToday,
		UserMessages:        sessionStats.UserMessages,
		BotMessages:         sessionStats.BotMessages,
		KnowledgeFAQs:       knowledgeStats.TotalFAQs,
		KnowledgeChunks:     knowledgeStats.TotalChunks,
		KnowledgeByCategory: knowledgeStats.Categories,
		KnowledgeByLanguage: knowledgeStats.Languages,
	}

	c.JSON(sdk.NewSuccessResponse("Statistics computed successfully", resp).AsGinResponse())
}
