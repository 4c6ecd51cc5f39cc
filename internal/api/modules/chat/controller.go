package chat

import (
	"errors"
	"net/http"

	"campuschat/internal/chat"
	"campuschat/internal/stores/session"
	"campuschat/pkg/sdk"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles chat and session HTTP requests
type Controller struct {
	chat     *chat.Service
	sessions *session.Store
	version  string
}

// NewController creates the chat controller
func NewController(service *chat.Service, sessions *session.Store, version string) *Controller {
	return &Controller{
		chat:     service,
		sessions: sessions,
		version:  version,
	}
}

// GetBanner handles GET requests for the API banner
func (ctrl *Controller) GetBanner(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("Campus FAQ chatbot API", sdk.BannerResponse{
		Message: "Campus FAQ chatbot API",
		Status:  "running",
		Version: ctrl.version,
	}).AsGinResponse())
}

// PostChat handles POST requests for one chat exchange
func (ctrl *Controller) PostChat(c *gin.Context) {
	var req sdk.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	exchange, err := ctrl.chat.Chat(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Message cannot be empty", err).AsGinResponse())
			return
		}

		// The generative backend failed. Hand students the canned apology so
		// the widget always has something to show.
		resp := sdk.ApiResponse[sdk.ChatResponse]{
			Status:  sdk.StatusError,
			Code:    http.StatusInternalServerError,
			Message: "Failed to process message",
			Data: sdk.ChatResponse{
				Response:  chat.FallbackResponse,
				SessionID: exchangeSessionID(exchange),
			},
		}
		c.JSON(resp.AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Message processed successfully", sdk.ChatResponse{
		Response:  exchange.Response,
		SessionID: exchange.SessionID.String(),
		Language:  exchange.Language,
	}).AsGinResponse())
}

// GetSession handles GET requests to retrieve a session and its messages
func (ctrl *Controller) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid session ID", err).AsGinResponse())
		return
	}

	sess, err := ctrl.sessions.GetSessionWithMessages(c.Request.Context(), id)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session retrieved successfully", toSDKSession(sess)).AsGinResponse())
}

// DeleteSession handles DELETE requests to remove a session and its messages
func (ctrl *Controller) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid session ID", err).AsGinResponse())
		return
	}

	if _, err := ctrl.sessions.GetSession(c.Request.Context(), id); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		return
	}

	if err := ctrl.sessions.DeleteSession(c.Request.Context(), id); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to delete session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Session deleted successfully").AsGinResponse())
}

func exchangeSessionID(exchange *chat.Exchange) string {
	if exchange == nil || exchange.SessionID == uuid.Nil {
		return ""
	}
	return exchange.SessionID.String()
}

// Helper method to convert an internal session to an sdk session
func toSDKSession(sess *session.Session) sdk.Session {
	resp := sdk.Session{
		ID:        sess.ID.String(),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		UserID:    sess.UserID,
		Active:    sess.Active,
	}

	for _, msg := range sess.Messages {
		resp.Messages = append(resp.Messages, &sdk.Message{
			ID:        msg.ID,
			CreatedAt: msg.CreatedAt,
			Sender:    msg.Sender,
			Text:      msg.Text,
			Language:  msg.Language,
		})
	}

	return resp
}
