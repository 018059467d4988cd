package repository

import (
	"errors"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository интерфейс для платёжных статусов и маркеров ежедневных проверок
type PaymentRepository interface {
	GetOrCreateByUser(userID uuid.UUID) (*models.PaymentStatus, error)
	Update(status *models.PaymentStatus) error
	ResetBillingCycle() error

	GetGateRun(name string) (string, error)
	SetGateRun(name, date string) error
}

// paymentRepository реализация репозитория платёжных статусов
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository создает новый репозиторий платёжных статусов
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// GetOrCreateByUser получает платёжный статус ученика, создавая запись
// при первом обращении. Дальше логика считает запись существующей.
func (r *paymentRepository) GetOrCreateByUser(userID uuid.UUID) (*models.PaymentStatus, error) {
	var status models.PaymentStatus
	err := r.db.Where("user_id = ?", userID).First(&status).Error
	if err == nil {
		return &status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status = models.PaymentStatus{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := r.db.Create(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// Update обновляет платёжный статус
func (r *paymentRepository) Update(status *models.PaymentStatus) error {
	return r.db.Save(status).Error
}

// ResetBillingCycle сбрасывает is_paid и auto_blocked у всех статусов (новый цикл)
func (r *paymentRepository) ResetBillingCycle() error {
	return r.db.Model(&models.PaymentStatus{}).
		Where("is_paid = ? OR auto_blocked = ?", true, true).
		Updates(map[string]interface{}{"is_paid": false, "auto_blocked": false}).Error
}

// GetGateRun возвращает дату последнего запуска проверки, пустую строку если не было
func (r *paymentRepository) GetGateRun(name string) (string, error) {
	var run models.GateRun
	err := r.db.First(&run, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return run.LastRun, nil
}

// SetGateRun сохраняет дату запуска проверки
func (r *paymentRepository) SetGateRun(name, date string) error {
	run := models.GateRun{Name: name, LastRun: date}
	return r.db.Save(&run).Error
}
