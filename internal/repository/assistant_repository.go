package repository

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantRepository интерфейс для сессий AI-помощника
type AssistantRepository interface {
	CreateSession(session *models.ChatSession) error
	GetSessionByID(id uuid.UUID) (*models.ChatSession, error)
	ListSessionsByUser(userID uuid.UUID) ([]models.ChatSession, error)
	CreateMessage(message *models.ChatMessage) error
	ListMessages(chatID uuid.UUID) ([]models.ChatMessage, error)
}

// assistantRepository реализация репозитория AI-помощника
type assistantRepository struct {
	db *gorm.DB
}

// NewAssistantRepository создает новый репозиторий AI-помощника
func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

// CreateSession создает сессию чата
func (r *assistantRepository) CreateSession(session *models.ChatSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return r.db.Create(session).Error
}

// GetSessionByID получает сессию по ID
func (r *assistantRepository) GetSessionByID(id uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionsByUser получает сессии пользователя, новые сверху
func (r *assistantRepository) ListSessionsByUser(userID uuid.UUID) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

// CreateMessage сохраняет сообщение чата
func (r *assistantRepository) CreateMessage(message *models.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.Create(message).Error
}

// ListMessages получает сообщения сессии в порядке отправки
func (r *assistantRepository) ListMessages(chatID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("chat_id = ?", chatID).Order("created_at").Find(&messages).Error
	return messages, err
}
