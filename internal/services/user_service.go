package services

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
)

// UserService управляет пользователями (административные операции)
type UserService interface {
	Get(id uuid.UUID) (*models.User, error)
	ListByRole(role models.UserRole) ([]models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error

	// SetBlocked блокирует или разблокирует пользователя вручную.
	// Ручная разблокировка снимает и автоблокировку по оплате.
	SetBlocked(userID uuid.UUID, blocked bool) error

	ListActivities(filter repository.ActivityFilter) ([]models.ActivityLog, error)
}

type userService struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	coinRepo    repository.CoinRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, paymentRepo repository.PaymentRepository, coinRepo repository.CoinRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		coinRepo:    coinRepo,
	}
}

// Get получает пользователя по ID
func (s *userService) Get(id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListByRole получает пользователей по роли; пустая роль — все
func (s *userService) ListByRole(role models.UserRole) ([]models.User, error) {
	return s.userRepo.ListByRole(role)
}

// Update обновляет пользователя
func (s *userService) Update(user *models.User) error {
	return s.userRepo.Update(user)
}

// Delete удаляет пользователя
func (s *userService) Delete(id uuid.UUID) error {
	return s.userRepo.Delete(id)
}

// SetBlocked меняет блокировку пользователя
func (s *userService) SetBlocked(userID uuid.UUID, blocked bool) error {
	if err := s.userRepo.SetBlocked(userID, blocked); err != nil {
		return err
	}
	if blocked {
		return nil
	}
	status, err := s.paymentRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	if status.AutoBlocked {
		status.AutoBlocked = false
		return s.paymentRepo.Update(status)
	}
	return nil
}

// ListActivities получает журнал активности с фильтрами
func (s *userService) ListActivities(filter repository.ActivityFilter) ([]models.ActivityLog, error) {
	return s.coinRepo.ListActivities(filter)
}
