package handlers

import (
	"net/http"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler представляет обработчик административных операций
type AdminHandler struct {
	userService    services.UserService
	paymentService services.PaymentService
	authService    services.AuthService
	ledger         services.LedgerService
}

// NewAdminHandler создает новый обработчик администратора
func NewAdminHandler(
	userService services.UserService,
	paymentService services.PaymentService,
	authService services.AuthService,
	ledger services.LedgerService,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		paymentService: paymentService,
		authService:    authService,
		ledger:         ledger,
	}
}

// AdjustCoinsRequest представляет ручное изменение баланса
type AdjustCoinsRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ListUsers возвращает пользователей, опционально по роли
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListByRole(models.UserRole(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser создает пользователя с любой ролью
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// BlockUser блокирует пользователя
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockUser разблокирует пользователя
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.SetBlocked(userID, blocked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// MarkPaid отмечает оплату ученика за текущий месяц
func (h *AdminHandler) MarkPaid(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.paymentService.MarkPaid(userID, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	status, err := h.paymentService.GetStatus(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// PaymentStatus возвращает платёжный статус ученика
func (h *AdminHandler) PaymentStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := h.paymentService.GetStatus(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// AdjustCoins вручную начисляет или списывает коины
func (h *AdminHandler) AdjustCoins(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdjustCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Amount >= 0 {
		err = h.ledger.AddCoins(userID, req.Amount, req.Reason)
	} else {
		err = h.ledger.RemoveCoins(userID, -req.Amount, req.Reason)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "adjusted"})
}

// Activities возвращает журнал активности с фильтрами
func (h *AdminHandler) Activities(c *gin.Context) {
	filter := repository.ActivityFilter{
		ActionType: models.ActivityAction(c.Query("action")),
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		filter.UserID = &userID
	}
	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse("2006-01-02", raw); err == nil {
			end := to.AddDate(0, 0, 1)
			filter.DateTo = &end
		}
	}

	activities, err := h.userService.ListActivities(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
