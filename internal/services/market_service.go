package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketService управляет коин-маркетом: товары, лайки, комментарии, покупки
type MarketService interface {
	ListProducts(includeInactive bool) ([]models.Product, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uuid.UUID) error

	// ToggleLike ставит или снимает лайк. Возвращает true, если лайк стоит
	// после вызова. Коин за лайк начисляется только один раз за всё время.
	ToggleLike(userID, productID uuid.UUID) (bool, error)

	// AddComment добавляет комментарий; каждый комментарий приносит коин
	AddComment(userID, productID uuid.UUID, content string) (*models.ProductComment, error)
	ListComments(productID uuid.UUID) ([]models.ProductComment, error)

	// Purchase покупает товар за коины: списание, остаток и запись
	// о покупке меняются в одной транзакции
	Purchase(userID, productID uuid.UUID) (*models.ProductPurchase, error)
	ListPurchases() ([]models.ProductPurchase, error)
	MarkDelivered(purchaseID uuid.UUID) error
}

type marketService struct {
	db         *gorm.DB
	marketRepo repository.MarketRepository
	coinRepo   repository.CoinRepository
	ledger     LedgerService
}

// NewMarketService создает новый сервис коин-маркета
func NewMarketService(
	db *gorm.DB,
	marketRepo repository.MarketRepository,
	coinRepo repository.CoinRepository,
	ledger LedgerService,
) MarketService {
	return &marketService{
		db:         db,
		marketRepo: marketRepo,
		coinRepo:   coinRepo,
		ledger:     ledger,
	}
}

// ListProducts получает товары; includeInactive — для администратора
func (s *marketService) ListProducts(includeInactive bool) ([]models.Product, error) {
	if includeInactive {
		return s.marketRepo.ListAllProducts()
	}
	return s.marketRepo.ListActiveProducts()
}

// GetProduct получает товар по ID
func (s *marketService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.marketRepo.GetProductByID(id)
}

// CreateProduct создает товар
func (s *marketService) CreateProduct(product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if product.CoinPrice <= 0 {
		return fmt.Errorf("%w: coin price must be positive", ErrValidation)
	}
	return s.marketRepo.CreateProduct(product)
}

// UpdateProduct обновляет товар
func (s *marketService) UpdateProduct(product *models.Product) error {
	return s.marketRepo.UpdateProduct(product)
}

// DeleteProduct удаляет товар
func (s *marketService) DeleteProduct(id uuid.UUID) error {
	return s.marketRepo.DeleteProduct(id)
}

// ToggleLike переключает лайк товара. Снятая строка лайка не удаляется
// навсегда: она помнит выплату, и повторный лайк коин не приносит.
func (s *marketService) ToggleLike(userID, productID uuid.UUID) (bool, error) {
	product, err := s.marketRepo.GetProductByID(productID)
	if err != nil {
		return false, err
	}

	existing, err := s.marketRepo.GetLikeAny(productID, userID)
	if err != nil {
		return false, err
	}

	// активный лайк — снимаем; коин не возвращается
	if existing != nil && !existing.DeletedAt.Valid {
		if err := s.marketRepo.DeleteLike(productID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if existing != nil {
		// повторный лайк: восстанавливаем строку, выплата уже была
		if err := s.marketRepo.RestoreLike(existing.ID); err != nil {
			return false, err
		}
		return true, nil
	}

	like := &models.ProductLike{
		ProductID:   productID,
		UserID:      userID,
		CoinAwarded: true,
	}
	if err := s.marketRepo.CreateLike(like); err != nil {
		return false, err
	}
	if err := s.ledger.AddCoins(userID, CoinsPerProductLike,
		fmt.Sprintf("Лайк товара: %s", product.Name)); err != nil {
		return true, err
	}
	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityLikeProduct,
		Description: fmt.Sprintf("Лайкнул товар: %s", product.Name),
	}); err != nil {
		log.Printf("Failed to log product like activity: %v", err)
	}
	return true, nil
}

// AddComment добавляет комментарий к товару и начисляет коин.
// Комментарии можно оставлять многократно, каждый приносит коин.
func (s *marketService) AddComment(userID, productID uuid.UUID, content string) (*models.ProductComment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	product, err := s.marketRepo.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	comment := &models.ProductComment{
		ProductID: productID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.marketRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	if err := s.ledger.AddCoins(userID, CoinsPerComment,
		fmt.Sprintf("Комментарий к товару: %s", product.Name)); err != nil {
		return comment, err
	}
	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityCommentProduct,
		Description: fmt.Sprintf("Прокомментировал товар: %s", product.Name),
	}); err != nil {
		log.Printf("Failed to log product comment activity: %v", err)
	}
	return comment, nil
}

// ListComments получает комментарии товара
func (s *marketService) ListComments(productID uuid.UUID) ([]models.ProductComment, error) {
	return s.marketRepo.ListComments(productID)
}

// Purchase покупает товар. Списание коинов, уменьшение остатка и запись
// о покупке — одна транзакция: при нехватке коинов или остатка всё
// откатывается целиком.
func (s *marketService) Purchase(userID, productID uuid.UUID) (*models.ProductPurchase, error) {
	product, err := s.marketRepo.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product is not available", ErrValidation)
	}

	purchase := &models.ProductPurchase{
		ProductID:   productID,
		UserID:      userID,
		CoinsSpent:  product.CoinPrice,
		PurchasedAt: time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.RemoveCoinsTx(tx, userID, product.CoinPrice,
			fmt.Sprintf("Покупка товара: %s", product.Name)); err != nil {
			return err
		}
		ok, err := s.marketRepo.DecrementStock(tx, productID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOutOfStock
		}
		return s.marketRepo.CreatePurchase(tx, purchase)
	})
	if err != nil {
		return nil, err
	}

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityPurchaseProduct,
		Description: fmt.Sprintf("Купил товар: %s (%d коинов)", product.Name, product.CoinPrice),
	}); err != nil {
		log.Printf("Failed to log purchase activity: %v", err)
	}
	return purchase, nil
}

// ListPurchases получает все покупки для администратора
func (s *marketService) ListPurchases() ([]models.ProductPurchase, error) {
	return s.marketRepo.ListPurchases()
}

// MarkDelivered помечает покупку доставленной
func (s *marketService) MarkDelivered(purchaseID uuid.UUID) error {
	return s.marketRepo.MarkDelivered(purchaseID)
}
