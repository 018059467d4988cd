package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Порог обновления last_activity: чаще раза в 5 минут отметка не пишется
const activityTouchInterval = 5 * time.Minute

// RegisterInput данные регистрации нового пользователя
type RegisterInput struct {
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Role      models.UserRole `json:"role"`
	BirthDate *time.Time      `json:"birth_date"`
}

// AuthResult результат входа: пользователь и JWT токен
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService управляет регистрацией, входом и проверкой токенов
type AuthService interface {
	Register(input RegisterInput) (*models.User, error)

	// Login проверяет пароль и выдает токен.
	// Заблокированный пользователь получает ErrUserBlocked.
	Login(username, password, ipAddress string) (*AuthResult, error)

	// ValidateToken проверяет токен и возвращает пользователя.
	// Попутно обновляет отметку последней активности.
	ValidateToken(tokenString string) (*models.User, error)

	ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	coinRepo  repository.CoinRepository
	jwtSecret string
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(userRepo repository.UserRepository, coinRepo repository.CoinRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		coinRepo:  coinRepo,
		jwtSecret: jwtSecret,
	}
}

// Register создает нового пользователя. Роль по умолчанию — ученик.
func (s *authService) Register(input RegisterInput) (*models.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if existing, err := s.userRepo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrValidation)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         role,
		BirthDate:    input.BirthDate,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login проверяет имя пользователя и пароль
func (s *authService) Login(username, password, ipAddress string) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrAccessDenied)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrAccessDenied)
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.userRepo.TouchLastActivity(user.ID, time.Now()); err != nil {
		log.Printf("Failed to touch last activity for %s: %v", user.ID, err)
	}
	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      user.ID,
		ActionType:  models.ActivityLogin,
		Description: "Вход в систему",
		IPAddress:   ipAddress,
	}); err != nil {
		log.Printf("Failed to log login activity: %v", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken валидирует JWT токен и возвращает пользователя
func (s *authService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.LastActivity == nil || time.Since(*user.LastActivity) > activityTouchInterval {
		if err := s.userRepo.TouchLastActivity(user.ID, time.Now()); err != nil {
			log.Printf("Failed to touch last activity for %s: %v", user.ID, err)
		}
	}
	return user, nil
}

// ChangePassword меняет пароль после проверки старого
func (s *authService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: invalid current password", ErrAccessDenied)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(user)
}

// generateJWT генерирует JWT токен для пользователя
func (s *authService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
