package services

import (
	"fmt"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService управляет балансом коинов. Любое изменение баланса
// проходит через него и атомарно сопровождается строкой журнала.
type LedgerService interface {
	AddCoins(userID uuid.UUID, amount int, reason string) error
	RemoveCoins(userID uuid.UUID, amount int, reason string) error

	// Tx-варианты для включения выплаты в общую транзакцию
	// вместе со взведением флага идемпотентности.
	AddCoinsTx(tx *gorm.DB, userID uuid.UUID, amount int, reason string) error
	RemoveCoinsTx(tx *gorm.DB, userID uuid.UUID, amount int, reason string) error

	ListTransactions(userID uuid.UUID) ([]models.CoinTransaction, error)
	VerifyBalance(userID uuid.UUID) (bool, error)
}

type ledgerService struct {
	db       *gorm.DB
	coinRepo repository.CoinRepository
	userRepo repository.UserRepository
}

// NewLedgerService создает новый сервис журнала коинов
func NewLedgerService(db *gorm.DB, coinRepo repository.CoinRepository, userRepo repository.UserRepository) LedgerService {
	return &ledgerService{
		db:       db,
		coinRepo: coinRepo,
		userRepo: userRepo,
	}
}

// AddCoins начисляет коины. Неположительная сумма — молчаливый no-op.
func (s *ledgerService) AddCoins(userID uuid.UUID, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.AddCoinsTx(tx, userID, amount, reason)
	})
}

// RemoveCoins списывает коины; при нехватке — ErrInsufficientBalance, баланс не меняется
func (s *ledgerService) RemoveCoins(userID uuid.UUID, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.RemoveCoinsTx(tx, userID, amount, reason)
	})
}

// AddCoinsTx начисляет коины в рамках переданной транзакции
func (s *ledgerService) AddCoinsTx(tx *gorm.DB, userID uuid.UUID, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	ok, err := s.coinRepo.ApplyDelta(tx, userID, amount)
	if err != nil {
		return fmt.Errorf("apply coin delta: %w", err)
	}
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return s.coinRepo.CreateTransaction(tx, &models.CoinTransaction{
		UserID: userID,
		Amount: amount,
		Action: models.CoinActionAdd,
		Reason: reason,
	})
}

// RemoveCoinsTx списывает коины в рамках переданной транзакции.
// Проверка баланса входит в сам UPDATE, поэтому при нехватке
// транзакция откатывается без частичных изменений.
func (s *ledgerService) RemoveCoinsTx(tx *gorm.DB, userID uuid.UUID, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	ok, err := s.coinRepo.ApplyDelta(tx, userID, -amount)
	if err != nil {
		return fmt.Errorf("apply coin delta: %w", err)
	}
	if !ok {
		// либо пользователя нет, либо не хватает баланса
		if _, err := s.userRepo.GetByID(userID); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return s.coinRepo.CreateTransaction(tx, &models.CoinTransaction{
		UserID: userID,
		Amount: amount,
		Action: models.CoinActionRemove,
		Reason: reason,
	})
}

// ListTransactions получает журнал пользователя
func (s *ledgerService) ListTransactions(userID uuid.UUID) ([]models.CoinTransaction, error) {
	return s.coinRepo.ListTransactions(userID)
}

// VerifyBalance сверяет сумму журнала с текущим балансом пользователя
func (s *ledgerService) VerifyBalance(userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	sum, err := s.coinRepo.SumByUser(userID)
	if err != nil {
		return false, err
	}
	return sum == user.Coins, nil
}
