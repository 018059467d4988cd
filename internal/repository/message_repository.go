package repository

import (
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository интерфейс для сообщений
type MessageRepository interface {
	Create(message *models.Message) error
	CreateBatch(messages []models.Message) error
	GetByID(id uuid.UUID) (*models.Message, error)
	ListByRecipient(userID uuid.UUID) ([]models.Message, error)
	MarkAsRead(id uuid.UUID) error
	CountUnread(userID uuid.UUID) (int64, error)

	ExistsForRecipientSince(userID uuid.UUID, messageType models.MessageType, since time.Time) (bool, error)
	ExistsBroadcastSince(messageType models.MessageType, contentPart string, since time.Time) (bool, error)
}

// messageRepository реализация репозитория сообщений
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository создает новый репозиторий сообщений
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create создает сообщение
func (r *messageRepository) Create(message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.Create(message).Error
}

// CreateBatch материализует рассылку пакетной вставкой,
// по строке на каждого получателя
func (r *messageRepository) CreateBatch(messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	for i := range messages {
		if messages[i].ID == uuid.Nil {
			messages[i].ID = uuid.New()
		}
	}
	return r.db.CreateInBatches(messages, 100).Error
}

// GetByID получает сообщение по ID
func (r *messageRepository) GetByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByRecipient получает сообщения пользователя вместе с общими объявлениями
func (r *messageRepository) ListByRecipient(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("recipient_id = ? OR (recipient_id IS NULL AND message_type = ?)", userID, models.MessageTypeAll).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkAsRead помечает сообщение прочитанным
func (r *messageRepository) MarkAsRead(id uuid.UUID) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true).Error
}

// CountUnread считает непрочитанные сообщения пользователя
func (r *messageRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ExistsForRecipientSince проверяет, отправлялось ли пользователю сообщение
// данного типа начиная с указанного момента
func (r *messageRepository) ExistsForRecipientSince(userID uuid.UUID, messageType models.MessageType, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND message_type = ? AND created_at >= ?", userID, messageType, since).
		Count(&count).Error
	return count > 0, err
}

// ExistsBroadcastSince проверяет, было ли общее объявление с данным фрагментом текста
func (r *messageRepository) ExistsBroadcastSince(messageType models.MessageType, contentPart string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id IS NULL AND message_type = ? AND content LIKE ? AND created_at >= ?",
			messageType, "%"+contentPart+"%", since).
		Count(&count).Error
	return count > 0, err
}
