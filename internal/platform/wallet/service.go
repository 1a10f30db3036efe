package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/pkg/money"
)

// Service provides the wallet engine: balance reads and atomic
// debit/credit with ledger append.
type Service struct {
	repo Repository
	tx   TxManager
}

// NewService creates a new wallet service
func NewService(repo Repository, tx TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

// GetBalance returns the user's wallet, creating it lazily with a
// zero balance on first read.
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

// Credit adds amount to the user's balance and appends a +amount
// ledger row, both in one transaction.
func (s *Service) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType TransactionType, description string) (*Wallet, error) {
	return s.apply(ctx, userID, amount, txType, description, false)
}

// Debit subtracts amount from the user's balance and appends a
// -amount ledger row, both in one transaction. Fails with
// ErrInsufficientFunds when the balance cannot cover the amount.
func (s *Service) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType TransactionType, description string) (*Wallet, error) {
	return s.apply(ctx, userID, amount, txType, description, true)
}

func (s *Service) apply(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType TransactionType, description string, debit bool) (*Wallet, error) {
	if !money.IsValid(amount) {
		return nil, ErrInvalidAmount
	}
	if !txType.IsValid() {
		return nil, ErrInvalidType
	}

	var result *Wallet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.repo.GetOrCreateForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock wallet: %w", err)
		}

		signed := amount
		newBalance := w.Balance.Add(amount)
		if debit {
			if w.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}
			signed = amount.Neg()
			newBalance = w.Balance.Sub(amount)
		}

		if err := s.repo.UpdateBalance(ctx, w.ID, newBalance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		entry := &Transaction{
			ID:          uuid.New(),
			WalletID:    w.ID,
			Amount:      signed,
			Type:        txType,
			Description: description,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.repo.AppendTransaction(ctx, entry); err != nil {
			return fmt.Errorf("failed to append ledger row: %w", err)
		}

		w.Balance = newBalance
		w.UpdatedAt = entry.CreatedAt
		result = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// History returns the wallet's ledger rows, newest first. The wallet
// is created lazily so a fresh user sees an empty history rather than
// an error.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	w, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	txs, err := s.repo.ListTransactions(ctx, w.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Reconcile verifies that the ledger sum matches the stored balance.
func (s *Service) Reconcile(ctx context.Context, userID uuid.UUID) error {
	w, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wallet: %w", err)
	}

	sum, err := s.repo.SumTransactions(ctx, w.ID)
	if err != nil {
		return fmt.Errorf("failed to sum ledger: %w", err)
	}

	if !sum.Equal(w.Balance) {
		return fmt.Errorf("ledger mismatch: balance=%s, ledger sum=%s", w.Balance, sum)
	}
	return nil
}
