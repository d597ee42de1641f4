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

var ErrCardNotOwned = errors.New("card not found in inventory")

// Inventory reconciles per-user owned-card counters. Like the ledger, its
// operations run on the surrounding TxManager scope when one is active.
type Inventory struct {
	db *bun.DB
}

func NewInventory(db *bun.DB) *Inventory {
	return &Inventory{db: db}
}

// Upsert adds delta copies of a card to the user's inventory, inserting the
// row on first acquisition. Returns the resulting quantity and whether the
// row was newly created.
func (inv *Inventory) Upsert(ctx context.Context, userID, cardID, delta int64) (int64, bool, error) {
	if delta <= 0 {
		return 0, false, fmt.Errorf("upsert delta must be positive, got %d", delta)
	}

	idb := dbFromContext(ctx, inv.db)

	owned := &models.OwnedCard{
		UserID:       userID,
		CardID:       cardID,
		Quantity:     delta,
		AcquiredDate: time.Now(),
	}
	// Insert and increment are one atomic statement so two concurrent first
	// acquisitions cannot collide on the user/card unique index.
	_, err := idb.NewInsert().
		Model(owned).
		On("CONFLICT (user_id, card_id) DO UPDATE").
		Set("quantity = owned_cards.quantity + EXCLUDED.quantity").
		Returning("quantity").
		Exec(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert card quantity: %w", err)
	}

	// A row that already existed held at least one copy, so only a fresh
	// insert comes back equal to the delta.
	return owned.Quantity, owned.Quantity == delta, nil
}

// Remove takes qty copies of a card out of the user's inventory. Quantities
// never go negative: removing the last copies deletes the row.
func (inv *Inventory) Remove(ctx context.Context, userID, cardID, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("remove quantity must be positive, got %d", qty)
	}

	idb := dbFromContext(ctx, inv.db)

	var owned models.OwnedCard
	err := idb.NewSelect().
		Model(&owned).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCardNotOwned
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get owned card: %w", err)
	}

	if owned.Quantity <= qty {
		_, err := idb.NewDelete().
			Model((*models.OwnedCard)(nil)).
			Where("id = ?", owned.ID).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to remove card: %w", err)
		}
		return 0, nil
	}

	_, err = idb.NewUpdate().
		Model((*models.OwnedCard)(nil)).
		Set("quantity = quantity - ?", qty).
		Where("id = ?", owned.ID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to decrease card quantity: %w", err)
	}
	return owned.Quantity - qty, nil
}

// Grant is an administrative direct award of cards outside pack opening.
func (inv *Inventory) Grant(ctx context.Context, userID, cardID, qty int64) (int64, bool, error) {
	return inv.Upsert(ctx, userID, cardID, qty)
}
