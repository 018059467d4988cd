package handlers

import (
	"errors"
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// respondError переводит ошибки сервисного слоя в HTTP-статусы
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Retry is not allowed for this test"})
	case errors.Is(err, services.ErrInsufficientBalance):
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough coins"})
	case errors.Is(err, services.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseIDParam достает UUID из параметра пути
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
