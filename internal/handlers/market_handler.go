package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// MarketHandler представляет обработчик коин-маркета
type MarketHandler struct {
	marketService services.MarketService
}

// NewMarketHandler создает новый обработчик коин-маркета
func NewMarketHandler(marketService services.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// ProductRequest представляет запрос создания или обновления товара
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CoinPrice   int    `json:"coin_price" binding:"required"`
	Stock       int    `json:"stock"`
	IsActive    *bool  `json:"is_active"`
}

// CommentRequest представляет запрос добавления комментария
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListProducts возвращает активные товары
func (h *MarketHandler) ListProducts(c *gin.Context) {
	user := currentUser(c)
	includeInactive := user != nil && user.IsAdmin() && c.Query("all") == "true"

	products, err := h.marketService.ListProducts(includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct возвращает товар вместе с комментариями
func (h *MarketHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.marketService.GetProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := h.marketService.ListComments(productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"comments": comments,
	})
}

// CreateProduct создает товар (администратор)
func (h *MarketHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		CoinPrice:   req.CoinPrice,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := h.marketService.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обновляет товар (администратор)
func (h *MarketHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.marketService.GetProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.Name = req.Name
	product.Description = req.Description
	product.CoinPrice = req.CoinPrice
	product.Stock = req.Stock
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := h.marketService.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct удаляет товар (администратор)
func (h *MarketHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.marketService.DeleteProduct(productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ToggleLike ставит или снимает лайк товара
func (h *MarketHandler) ToggleLike(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, err := h.marketService.ToggleLike(currentUserID(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// AddComment добавляет комментарий к товару
func (h *MarketHandler) AddComment(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.marketService.AddComment(currentUserID(c), productID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Purchase покупает товар за коины
func (h *MarketHandler) Purchase(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.marketService.Purchase(currentUserID(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// ListPurchases возвращает все покупки (администратор)
func (h *MarketHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.marketService.ListPurchases()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// MarkDelivered помечает покупку доставленной (администратор)
func (h *MarketHandler) MarkDelivered(c *gin.Context) {
	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.marketService.MarkDelivered(purchaseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "delivered"})
}
