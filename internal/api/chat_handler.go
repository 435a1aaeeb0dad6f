package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/llm"
	"thryveiq/coaching-app/internal/service"
)

// ChatHandler holds the chat service dependency.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// --- Request/Response Structs ---

type ChatMessageRequest struct {
	Message string        `json:"message" binding:"required"`
	History []llm.Message `json:"history"` // prior turns, oldest first
}

type ChatMessageResponse struct {
	Reply     string   `json:"reply"`
	ToolsUsed []string `json:"tools_used"`
}

// --- Handler Methods ---

// SendMessage runs one coaching chat turn for the athlete.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reply, toolsUsed, err := h.chatService.Message(c.Request.Context(), userID, req.Message, req.History)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, ChatMessageResponse{Reply: reply, ToolsUsed: toolsUsed})
}
