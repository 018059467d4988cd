package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware создает middleware для авторизации
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Получаем токен из заголовка Authorization или cookie
		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			if cookie, err := c.Cookie("jwt"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Заблокированный пользователь не проходит дальше входа
		if user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// SweepMiddleware запускает ежедневные проверки (платёжный цикл,
// дни рождения, неактивность) на первом запросе каждого дня.
// Повторные запросы того же дня проходят без обращений к базе записи.
func SweepMiddleware(payments services.PaymentService, notifier services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		if err := payments.RunDailyCheckIfDue(now); err != nil {
			log.Printf("Daily payment check failed: %v", err)
		}
		if err := notifier.RunDailySweepIfDue(now); err != nil {
			log.Printf("Daily notification sweep failed: %v", err)
		}
		c.Next()
	}
}

// AdminOnlyMiddleware пропускает только администраторов
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, ok := roleVal.(models.UserRole)
		if !exists || !ok || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin role required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// TeacherOrAdminMiddleware пропускает преподавателей и администраторов
func TeacherOrAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, ok := roleVal.(models.UserRole)
		if !exists || !ok || (role != models.RoleTeacher && role != models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Teacher role required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID достает ID авторизованного пользователя из контекста
func currentUserID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get("user_id"); exists {
		if userID, ok := id.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}

// currentUser достает авторизованного пользователя из контекста
func currentUser(c *gin.Context) *models.User {
	if u, exists := c.Get("user"); exists {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}
