package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole определяет роли пользователей
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User представляет пользователя платформы
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Phone        string         `json:"phone" gorm:"uniqueIndex"`
	Role         UserRole       `json:"role" gorm:"default:'student'"`
	TelegramID   *int64         `json:"telegram_id" gorm:"uniqueIndex"` // привязка для push-уведомлений, опционально
	Coins        int            `json:"coins" gorm:"not null;default:0"` // баланс меняется только через LedgerService
	IsBlocked    bool           `json:"is_blocked" gorm:"default:false"`
	BirthDate    *time.Time     `json:"birth_date"`
	LastActivity *time.Time     `json:"last_activity"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" gorm:"foreignKey:UserID"`
	Enrollments   []Enrollment   `json:"enrollments,omitempty" gorm:"foreignKey:UserID"`
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsTeacher проверяет, является ли пользователь преподавателем
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// IsStudent проверяет, является ли пользователь учеником
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// PaymentStatus представляет платёжный статус ученика (один к одному)
type PaymentStatus struct {
	ID              uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:text;uniqueIndex;not null"`
	IsPaid          bool       `json:"is_paid" gorm:"default:false"`
	PaidUntil       *time.Time `json:"paid_until"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
	AutoBlocked     bool       `json:"auto_blocked" gorm:"default:false"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// GateRun хранит дату последнего запуска ежедневной проверки.
// Явная запись вместо маркера в памяти процесса: переживает рестарты
// и работает при нескольких инстансах.
type GateRun struct {
	Name      string    `json:"name" gorm:"primary_key"` // "payment_gate", "birthday_sweep"
	LastRun   string    `json:"last_run"`                // дата в формате 2006-01-02
	UpdatedAt time.Time `json:"updated_at"`
}
