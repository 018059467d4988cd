package services

import (
	"errors"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
)

func newMarketService(env *testEnv) MarketService {
	return NewMarketService(env.db, env.marketRepo, env.coinRepo, env.ledger)
}

func (e *testEnv) createProduct(t *testing.T, price, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      "Фирменная кружка",
		CoinPrice: price,
		Stock:     stock,
		IsActive:  true,
	}
	if err := e.marketRepo.CreateProduct(product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestProductLikeAwardsOnceEver(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)
	product := env.createProduct(t, 10, 5)

	liked, err := svc.ToggleLike(student.ID, product.ID)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !liked {
		t.Error("first toggle should set the like")
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerProductLike {
		t.Errorf("coins after like = %d, want %d", got, CoinsPerProductLike)
	}

	// снятие лайка коин не возвращает
	liked, err = svc.ToggleLike(student.ID, product.ID)
	if err != nil {
		t.Fatalf("unlike error = %v", err)
	}
	if liked {
		t.Error("second toggle should remove the like")
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerProductLike {
		t.Errorf("coins after unlike = %d, want %d", got, CoinsPerProductLike)
	}

	// повторный лайк выплату не дублирует
	liked, err = svc.ToggleLike(student.ID, product.ID)
	if err != nil {
		t.Fatalf("re-like error = %v", err)
	}
	if !liked {
		t.Error("third toggle should set the like again")
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerProductLike {
		t.Errorf("coins after re-like = %d, want %d", got, CoinsPerProductLike)
	}
}

func TestProductCommentAwardsEachTime(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)
	product := env.createProduct(t, 10, 5)

	for i := 0; i < 3; i++ {
		if _, err := svc.AddComment(student.ID, product.ID, "Отличный товар!"); err != nil {
			t.Fatalf("AddComment() error = %v", err)
		}
	}
	if got := env.userCoins(t, student.ID); got != 3*CoinsPerComment {
		t.Errorf("coins = %d, want %d", got, 3*CoinsPerComment)
	}

	if _, err := svc.AddComment(student.ID, product.ID, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty comment error = %v, want ErrValidation", err)
	}
}

func TestPurchaseSpendsCoinsAndStock(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)
	product := env.createProduct(t, 10, 2)

	if err := env.ledger.AddCoins(student.ID, 25, "Начальный баланс"); err != nil {
		t.Fatalf("seed coins: %v", err)
	}

	purchase, err := svc.Purchase(student.ID, product.ID)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if purchase.CoinsSpent != 10 {
		t.Errorf("coins spent = %d, want 10", purchase.CoinsSpent)
	}
	if got := env.userCoins(t, student.ID); got != 15 {
		t.Errorf("balance = %d, want 15", got)
	}

	updated, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if updated.Stock != 1 {
		t.Errorf("stock = %d, want 1", updated.Stock)
	}

	ok, err := env.ledger.VerifyBalance(student.ID)
	if err != nil {
		t.Fatalf("VerifyBalance() error = %v", err)
	}
	if !ok {
		t.Error("journal should match balance after purchase")
	}
}

func TestPurchaseInsufficientBalanceRollsBack(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)
	product := env.createProduct(t, 50, 2)

	if err := env.ledger.AddCoins(student.ID, 10, "Начальный баланс"); err != nil {
		t.Fatalf("seed coins: %v", err)
	}

	if _, err := svc.Purchase(student.ID, product.ID); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Purchase() error = %v, want ErrInsufficientBalance", err)
	}
	if got := env.userCoins(t, student.ID); got != 10 {
		t.Errorf("balance = %d, want unchanged 10", got)
	}

	updated, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if updated.Stock != 2 {
		t.Errorf("stock = %d, want unchanged 2", updated.Stock)
	}
}

func TestPurchaseOutOfStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)
	product := env.createProduct(t, 10, 0)

	if err := env.ledger.AddCoins(student.ID, 30, "Начальный баланс"); err != nil {
		t.Fatalf("seed coins: %v", err)
	}

	if _, err := svc.Purchase(student.ID, product.ID); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("Purchase() error = %v, want ErrOutOfStock", err)
	}
	// списание откатилось вместе с покупкой
	if got := env.userCoins(t, student.ID); got != 30 {
		t.Errorf("balance = %d, want unchanged 30", got)
	}
	transactions, err := env.coinRepo.ListTransactions(student.ID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("transactions = %d, want only the seed", len(transactions))
	}
}

func TestPurchaseInactiveProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := newMarketService(env)
	student := env.createUser(t, models.RoleStudent)

	product := env.createProduct(t, 10, 5)
	product.IsActive = false
	if err := env.marketRepo.UpdateProduct(product); err != nil {
		t.Fatalf("update product: %v", err)
	}

	if _, err := svc.Purchase(student.ID, product.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("Purchase() error = %v, want ErrValidation", err)
	}
	if _, err := svc.Purchase(student.ID, uuid.New()); err == nil {
		t.Error("purchase of unknown product should fail")
	}
}
