package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageType определяет тип сообщения
type MessageType string

const (
	MessageTypePersonal       MessageType = "personal"
	MessageTypeAll            MessageType = "all" // широковещательное, recipient == nil
	MessageTypeMotivation     MessageType = "motivation"
	MessageTypeAchievement    MessageType = "achievement"
	MessageTypeRecommendation MessageType = "recommendation"
	MessageTypeReminder       MessageType = "reminder"
	MessageTypeWarning        MessageType = "warning"
	MessageTypeSystem         MessageType = "system"
	MessageTypeSecurity       MessageType = "security"
	MessageTypePayment        MessageType = "payment"
)

// Cohort определяет группу получателей при массовой рассылке
type Cohort string

const (
	CohortStudents Cohort = "students"
	CohortTeachers Cohort = "teachers"
	CohortAll      Cohort = "all"
)

// Message представляет уведомление пользователю.
// recipient == nil вместе с типом "all" означает общее объявление;
// рассылки по ролям материализуются отдельной строкой на каждого получателя,
// чтобы статус прочтения был независимым.
type Message struct {
	ID          uuid.UUID   `json:"id" gorm:"type:text;primary_key"`
	Title       string      `json:"title" gorm:"not null"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type" gorm:"default:'personal';index"`
	RecipientID *uuid.UUID  `json:"recipient_id" gorm:"type:text;index"`
	SenderID    *uuid.UUID  `json:"sender_id" gorm:"type:text"` // nil — системное сообщение
	IsRead      bool        `json:"is_read" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	Recipient *User `json:"-" gorm:"foreignKey:RecipientID"`
	Sender    *User `json:"-" gorm:"foreignKey:SenderID"`
}
