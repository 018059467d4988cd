package repository

import (
	"errors"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketRepository интерфейс для коин-маркета
type MarketRepository interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id uuid.UUID) (*models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uuid.UUID) error
	ListActiveProducts() ([]models.Product, error)
	ListAllProducts() ([]models.Product, error)
	DecrementStock(tx *gorm.DB, productID uuid.UUID) (bool, error)

	GetLike(productID, userID uuid.UUID) (*models.ProductLike, error)
	GetLikeAny(productID, userID uuid.UUID) (*models.ProductLike, error)
	CreateLike(like *models.ProductLike) error
	UpdateLike(like *models.ProductLike) error
	RestoreLike(likeID uuid.UUID) error
	DeleteLike(productID, userID uuid.UUID) error

	CreateComment(comment *models.ProductComment) error
	ListComments(productID uuid.UUID) ([]models.ProductComment, error)

	CreatePurchase(tx *gorm.DB, purchase *models.ProductPurchase) error
	ListPurchases() ([]models.ProductPurchase, error)
	MarkDelivered(purchaseID uuid.UUID) error
}

// marketRepository реализация репозитория коин-маркета
type marketRepository struct {
	db *gorm.DB
}

// NewMarketRepository создает новый репозиторий коин-маркета
func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

// CreateProduct создает товар
func (r *marketRepository) CreateProduct(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.Create(product).Error
}

// GetProductByID получает товар по ID
func (r *marketRepository) GetProductByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct обновляет товар
func (r *marketRepository) UpdateProduct(product *models.Product) error {
	return r.db.Save(product).Error
}

// DeleteProduct удаляет товар
func (r *marketRepository) DeleteProduct(id uuid.UUID) error {
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

// ListActiveProducts получает активные товары, новые сверху
func (r *marketRepository) ListActiveProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&products).Error
	return products, err
}

// ListAllProducts получает все товары (для администратора)
func (r *marketRepository) ListAllProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

// DecrementStock уменьшает остаток на единицу, если товар ещё есть.
// Условие stock > 0 в самом UPDATE защищает от продажи последней
// единицы двум покупателям.
func (r *marketRepository) DecrementStock(tx *gorm.DB, productID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock > 0", productID).
		Update("stock", gorm.Expr("stock - 1"))
	return res.RowsAffected > 0, res.Error
}

// GetLike получает активный лайк пользователя на товар, nil если лайка нет
func (r *marketRepository) GetLike(productID, userID uuid.UUID) (*models.ProductLike, error) {
	var like models.ProductLike
	err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikeAny получает лайк включая снятые. Снятый лайк хранит факт выплаты,
// поэтому повторный лайк того же товара коин не приносит.
func (r *marketRepository) GetLikeAny(productID, userID uuid.UUID) (*models.ProductLike, error) {
	var like models.ProductLike
	err := r.db.Unscoped().Where("product_id = ? AND user_id = ?", productID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateLike создает лайк
func (r *marketRepository) CreateLike(like *models.ProductLike) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return r.db.Create(like).Error
}

// UpdateLike обновляет лайк
func (r *marketRepository) UpdateLike(like *models.ProductLike) error {
	return r.db.Save(like).Error
}

// RestoreLike восстанавливает снятый лайк
func (r *marketRepository) RestoreLike(likeID uuid.UUID) error {
	return r.db.Unscoped().Model(&models.ProductLike{}).
		Where("id = ?", likeID).Update("deleted_at", nil).Error
}

// DeleteLike снимает лайк (мягкое удаление)
func (r *marketRepository) DeleteLike(productID, userID uuid.UUID) error {
	return r.db.Delete(&models.ProductLike{}, "product_id = ? AND user_id = ?", productID, userID).Error
}

// CreateComment создает комментарий к товару
func (r *marketRepository) CreateComment(comment *models.ProductComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.Create(comment).Error
}

// ListComments получает комментарии товара, новые сверху
func (r *marketRepository) ListComments(productID uuid.UUID) ([]models.ProductComment, error) {
	var comments []models.ProductComment
	err := r.db.Preload("User").Where("product_id = ?", productID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// CreatePurchase создает запись о покупке (в рамках переданной транзакции)
func (r *marketRepository) CreatePurchase(tx *gorm.DB, purchase *models.ProductPurchase) error {
	if tx == nil {
		tx = r.db
	}
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	return tx.Create(purchase).Error
}

// ListPurchases получает все покупки (для администратора)
func (r *marketRepository) ListPurchases() ([]models.ProductPurchase, error) {
	var purchases []models.ProductPurchase
	err := r.db.Preload("Product").Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

// MarkDelivered помечает покупку доставленной
func (r *marketRepository) MarkDelivered(purchaseID uuid.UUID) error {
	return r.db.Model(&models.ProductPurchase{}).
		Where("id = ?", purchaseID).Update("is_delivered", true).Error
}
