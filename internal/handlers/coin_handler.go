package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// CoinHandler представляет обработчик баланса и журнала коинов
type CoinHandler struct {
	ledger services.LedgerService
}

// NewCoinHandler создает новый обработчик коинов
func NewCoinHandler(ledger services.LedgerService) *CoinHandler {
	return &CoinHandler{ledger: ledger}
}

// Balance возвращает баланс авторизованного пользователя
func (h *CoinHandler) Balance(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"coins": user.Coins})
}

// Transactions возвращает журнал коинов пользователя
func (h *CoinHandler) Transactions(c *gin.Context) {
	transactions, err := h.ledger.ListTransactions(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// Verify сверяет сумму журнала с балансом (административная проверка)
func (h *CoinHandler) Verify(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	consistent, err := h.ledger.VerifyBalance(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consistent": consistent})
}
