package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler представляет обработчик авторизации
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler создает новый обработчик авторизации
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest представляет запрос входа
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest представляет запрос смены пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register регистрирует нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Самостоятельно зарегистрироваться можно только учеником;
	// преподавателей и администраторов создает администратор
	req.Role = ""

	user, err := h.authService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login выполняет вход по имени пользователя и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Me возвращает профиль авторизованного пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// ChangePassword меняет пароль авторизованного пользователя
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(currentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}
