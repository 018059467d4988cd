package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssistantHandler представляет обработчик AI-помощника
type AssistantHandler struct {
	assistantService services.AssistantService
}

// NewAssistantHandler создает новый обработчик AI-помощника
func NewAssistantHandler(assistantService services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// AskRequest представляет вопрос помощнику
type AskRequest struct {
	SessionID *uuid.UUID `json:"session_id"`
	Question  string     `json:"question" binding:"required"`
}

// Ask отправляет вопрос помощнику
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, session, err := h.assistantService.Ask(c.Request.Context(), currentUserID(c), req.SessionID, req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"reply":      reply,
	})
}

// ListSessions возвращает сессии пользователя
func (h *AssistantHandler) ListSessions(c *gin.Context) {
	sessions, err := h.assistantService.ListSessions(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ListMessages возвращает сообщения сессии
func (h *AssistantHandler) ListMessages(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	messages, err := h.assistantService.ListMessages(currentUserID(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
