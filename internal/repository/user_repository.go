package repository

import (
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	ListByRole(role models.UserRole) ([]models.User, error)
	ListUnblockedStudents() ([]models.User, error)
	ListWithBirthday(day, month int) ([]models.User, error)
	SetBlocked(id uuid.UUID, blocked bool) error
	TouchLastActivity(id uuid.UUID, at time.Time) error
}

// userRepository реализация репозитория пользователей
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create создает нового пользователя
func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

// GetByID получает пользователя по ID
func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername получает пользователя по логину
func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByPhone получает пользователя по номеру телефона
func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update обновляет пользователя
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete удаляет пользователя
func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// ListByRole получает пользователей по роли; пустая роль — все
func (r *userRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	query := r.db.Order("created_at")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	err := query.Find(&users).Error
	return users, err
}

// ListUnblockedStudents получает незаблокированных учеников
func (r *userRepository) ListUnblockedStudents() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ? AND is_blocked = ?", models.RoleStudent, false).Find(&users).Error
	return users, err
}

// ListWithBirthday получает пользователей, у которых день рождения в указанный день
func (r *userRepository) ListWithBirthday(day, month int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("birth_date IS NOT NULL").
		Where("CAST(strftime('%d', birth_date) AS INTEGER) = ? AND CAST(strftime('%m', birth_date) AS INTEGER) = ?", day, month).
		Find(&users).Error
	return users, err
}

// SetBlocked выставляет флаг блокировки пользователя
func (r *userRepository) SetBlocked(id uuid.UUID, blocked bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_blocked", blocked).Error
}

// TouchLastActivity обновляет время последней активности
func (r *userRepository) TouchLastActivity(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_activity", at).Error
}
