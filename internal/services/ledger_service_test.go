package services

import (
	"errors"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func TestLedgerAddAndRemove(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, models.RoleStudent)

	if err := env.ledger.AddCoins(student.ID, 5, "тест"); err != nil {
		t.Fatalf("AddCoins() error = %v", err)
	}
	if err := env.ledger.RemoveCoins(student.ID, 2, "тест"); err != nil {
		t.Fatalf("RemoveCoins() error = %v", err)
	}

	if got := env.userCoins(t, student.ID); got != 3 {
		t.Errorf("balance = %d, want 3", got)
	}

	transactions, err := env.ledger.ListTransactions(student.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(transactions) != 2 {
		t.Errorf("transactions = %d, want 2", len(transactions))
	}

	consistent, err := env.ledger.VerifyBalance(student.ID)
	if err != nil {
		t.Fatalf("VerifyBalance() error = %v", err)
	}
	if !consistent {
		t.Error("VerifyBalance() = false, want true")
	}
}

func TestLedgerInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, models.RoleStudent)

	if err := env.ledger.AddCoins(student.ID, 3, "тест"); err != nil {
		t.Fatalf("AddCoins() error = %v", err)
	}

	err := env.ledger.RemoveCoins(student.ID, 10, "списание")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("RemoveCoins() error = %v, want ErrInsufficientBalance", err)
	}

	// баланс и журнал не изменились
	if got := env.userCoins(t, student.ID); got != 3 {
		t.Errorf("balance = %d, want 3", got)
	}
	transactions, err := env.ledger.ListTransactions(student.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(transactions))
	}
}

func TestLedgerIgnoresNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, models.RoleStudent)

	tests := []struct {
		name   string
		amount int
	}{
		{name: "zero", amount: 0},
		{name: "negative", amount: -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.ledger.AddCoins(student.ID, tt.amount, "тест"); err != nil {
				t.Fatalf("AddCoins() error = %v", err)
			}
			if got := env.userCoins(t, student.ID); got != 0 {
				t.Errorf("balance = %d, want 0", got)
			}
		})
	}
}
