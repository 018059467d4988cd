package models

import (
	"time"

	"github.com/google/uuid"
)

// CoinAction определяет направление операции с коинами
type CoinAction string

const (
	CoinActionAdd    CoinAction = "add"
	CoinActionRemove CoinAction = "remove"
)

// CoinTransaction представляет строку журнала коинов (append-only).
// Сумма всех транзакций пользователя всегда равна его балансу.
type CoinTransaction struct {
	ID     uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	UserID uuid.UUID  `json:"user_id" gorm:"type:text;not null;index"`
	Amount int        `json:"amount" gorm:"not null"` // всегда положительное, знак задаёт action
	Action CoinAction `json:"action" gorm:"not null"`
	Reason string     `json:"reason"`

	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// ActivityAction определяет тип действия в журнале активности
type ActivityAction string

const (
	ActivityLogin           ActivityAction = "login"
	ActivityLogout          ActivityAction = "logout"
	ActivityLikePost        ActivityAction = "like_post"
	ActivityCommentPost     ActivityAction = "comment_post"
	ActivityLikeProduct     ActivityAction = "like_product"
	ActivityCommentProduct  ActivityAction = "comment_product"
	ActivitySubmitHomework  ActivityAction = "submit_homework"
	ActivityHomeworkGraded  ActivityAction = "homework_graded"
	ActivitySubmitTest      ActivityAction = "submit_test"
	ActivityWatchVideo      ActivityAction = "watch_video"
	ActivityEnrollCourse    ActivityAction = "enroll_course"
	ActivityPurchaseProduct ActivityAction = "purchase_product"
	ActivityEarnCoins       ActivityAction = "earn_coins"
)

// ActivityLog представляет запись журнала активности пользователя
type ActivityLog struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:text;not null;index"`
	ActionType  ActivityAction `json:"action_type" gorm:"index"`
	Description string         `json:"description"`
	IPAddress   string         `json:"ip_address"`

	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
