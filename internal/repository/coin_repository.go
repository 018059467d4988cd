package repository

import (
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CoinRepository интерфейс для журнала коинов и журнала активности
type CoinRepository interface {
	// ApplyDelta изменяет баланс одним UPDATE с проверкой в условии.
	// Возвращает false, если на балансе недостаточно коинов для списания.
	ApplyDelta(tx *gorm.DB, userID uuid.UUID, delta int) (bool, error)
	CreateTransaction(tx *gorm.DB, transaction *models.CoinTransaction) error
	ListTransactions(userID uuid.UUID) ([]models.CoinTransaction, error)
	SumByUser(userID uuid.UUID) (int, error)

	CreateActivity(activity *models.ActivityLog) error
	ListActivities(filter ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityFilter задает фильтры выборки журнала активности
type ActivityFilter struct {
	UserID     *uuid.UUID
	ActionType models.ActivityAction
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
}

// coinRepository реализация репозитория коинов
type coinRepository struct {
	db *gorm.DB
}

// NewCoinRepository создает новый репозиторий коинов
func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{db: db}
}

// ApplyDelta изменяет баланс пользователя. Условие coins >= -delta при списании
// делает операцию compare-and-swap: конкурирующие запросы не теряют обновления
// и баланс не уходит в минус.
func (r *coinRepository) ApplyDelta(tx *gorm.DB, userID uuid.UUID, delta int) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	query := tx.Model(&models.User{}).Where("id = ?", userID)
	if delta < 0 {
		query = query.Where("coins >= ?", -delta)
	}
	res := query.Update("coins", gorm.Expr("coins + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CreateTransaction добавляет строку журнала (журнал append-only)
func (r *coinRepository) CreateTransaction(tx *gorm.DB, transaction *models.CoinTransaction) error {
	if tx == nil {
		tx = r.db
	}
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	return tx.Create(transaction).Error
}

// ListTransactions получает журнал пользователя, новые сверху
func (r *coinRepository) ListTransactions(userID uuid.UUID) ([]models.CoinTransaction, error) {
	var transactions []models.CoinTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

// SumByUser возвращает сумму журнала: add минус remove.
// Используется для сверки с текущим балансом.
func (r *coinRepository) SumByUser(userID uuid.UUID) (int, error) {
	var sum *int
	err := r.db.Model(&models.CoinTransaction{}).
		Select("SUM(CASE WHEN action = ? THEN amount ELSE -amount END)", models.CoinActionAdd).
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// CreateActivity добавляет запись журнала активности
func (r *coinRepository) CreateActivity(activity *models.ActivityLog) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	return r.db.Create(activity).Error
}

// ListActivities получает журнал активности с фильтрами
func (r *coinRepository) ListActivities(filter ActivityFilter) ([]models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{}).Order("created_at DESC")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	var activities []models.ActivityLog
	err := query.Limit(limit).Find(&activities).Error
	return activities, err
}
