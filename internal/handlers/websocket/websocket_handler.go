// internal/handlers/websocket/websocket_handler.go
package websocket

import (
	"net/http"

	"tedtam-service/internal/middleware"
	"tedtam-service/internal/pkg/response"
	wshub "tedtam-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The mobile client connects from app webviews with no stable origin.
		return true
	},
}

type WebSocketHandler struct {
	hub    *wshub.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *wshub.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// ClientCount reports the number of connected realtime clients.
func (h *WebSocketHandler) ClientCount() int {
	return h.hub.TotalClients()
}

// HandleConnection upgrades an authenticated request and joins the hub.
// Auth middleware runs first; browsers pass the token as ?token= since
// the WebSocket API cannot set headers.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.String("agent_id", agentID),
			zap.Error(err))
		return
	}

	client := wshub.NewClient(h.hub, conn, agentID, h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
