package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler представляет обработчик сообщений
type MessageHandler struct {
	notifier services.NotificationService
}

// NewMessageHandler создает новый обработчик сообщений
func NewMessageHandler(notifier services.NotificationService) *MessageHandler {
	return &MessageHandler{notifier: notifier}
}

// SendMessageRequest представляет запрос отправки сообщения.
// Указывается либо получатель, либо группа получателей.
type SendMessageRequest struct {
	Title       string             `json:"title" binding:"required"`
	Content     string             `json:"content" binding:"required"`
	MessageType models.MessageType `json:"message_type"`
	RecipientID *uuid.UUID         `json:"recipient_id"`
	Cohort      models.Cohort      `json:"cohort"`
}

// List возвращает сообщения пользователя вместе с общими объявлениями
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.notifier.ListByUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UnreadCount возвращает число непрочитанных сообщений
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifier.CountUnread(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkAsRead помечает сообщение прочитанным
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notifier.MarkAsRead(messageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// Send отправляет сообщение пользователю или группе (администратор)
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = models.MessageTypePersonal
	}
	senderID := currentUserID(c)

	if req.RecipientID != nil {
		if err := h.notifier.SendFrom(&senderID, *req.RecipientID, req.Title, req.Content, messageType); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "sent"})
		return
	}

	if req.Cohort == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient_id or cohort is required"})
		return
	}
	if err := h.notifier.SendToCohort(req.Cohort, &senderID, req.Title, req.Content, messageType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "sent"})
}
