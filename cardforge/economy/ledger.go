package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

var ErrUserNotFound = errors.New("user not found")

// InsufficientCreditsError is returned when a debit would drive a balance
// negative. It carries both amounts so callers can render an actionable
// message.
type InsufficientCreditsError struct {
	Required int64
	Current  int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits (required %d, current %d)", e.Required, e.Current)
}

// CreditLedger mutates and reads per-user credit balances. All operations
// are transaction-aware: inside a TxManager scope they run on the scope's
// transaction.
type CreditLedger struct {
	db *bun.DB
}

func NewCreditLedger(db *bun.DB) *CreditLedger {
	return &CreditLedger{db: db}
}

func (l *CreditLedger) Balance(ctx context.Context, userID int64) (int64, error) {
	var credits int64
	err := dbFromContext(ctx, l.db).NewSelect().
		Model((*models.User)(nil)).
		Column("credits").
		Where("id = ?", userID).
		Scan(ctx, &credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return credits, err
}

// Debit subtracts amount from the user's balance and returns the remainder.
// The row is locked for the duration of the surrounding transaction, so two
// concurrent debits against the same user serialize on the balance check and
// a balance that only covers one of them fails the other.
func (l *CreditLedger) Debit(ctx context.Context, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	idb := dbFromContext(ctx, l.db)

	var current int64
	err := idb.NewSelect().
		Model((*models.User)(nil)).
		Column("credits").
		Where("id = ?", userID).
		For("UPDATE").
		Scan(ctx, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	if current < amount {
		return 0, &InsufficientCreditsError{Required: amount, Current: current}
	}

	remaining := current - amount
	_, err = idb.NewUpdate().
		Model((*models.User)(nil)).
		Set("credits = credits - ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to debit credits: %w", err)
	}

	return remaining, nil
}

// Credit adds amount to the user's balance and returns the new total.
func (l *CreditLedger) Credit(ctx context.Context, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	var total int64
	err := dbFromContext(ctx, l.db).NewUpdate().
		Model((*models.User)(nil)).
		Set("credits = credits + ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Returning("credits").
		Scan(ctx, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add credits: %w", err)
	}
	return total, nil
}
