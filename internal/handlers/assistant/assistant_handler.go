// internal/handlers/assistant/assistant_handler.go
package assistant

import (
	"net/http"

	"tedtam-service/internal/pkg/response"
	service "tedtam-service/internal/service/assistant"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	responder *service.Responder
}

func NewAssistantHandler(responder *service.Responder) *AssistantHandler {
	return &AssistantHandler{responder: responder}
}

type messageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// SendMessage runs one scripted exchange with the field assistant.
func (h *AssistantHandler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	reply := h.responder.Reply(req.Message)
	response.Success(c, http.StatusOK, "reply generated", reply)
}
