package gacha

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

// CatalogStore resolves packs and their drop-rate tables.
type CatalogStore interface {
	GetByID(ctx context.Context, id int64) (*models.Pack, error)
	GetCombinations(ctx context.Context, packID int64) ([]*models.PackCombination, error)
}

// CreditLedger is the slice of the credit ledger the opener consumes.
type CreditLedger interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	Debit(ctx context.Context, userID, amount int64) (int64, error)
}

// InventoryStore reconciles owned-card counters for drawn cards.
type InventoryStore interface {
	Upsert(ctx context.Context, userID, cardID, delta int64) (quantity int64, isNew bool, err error)
}

// TxRunner scopes a unit of work: everything inside fn commits or rolls
// back together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(context.Context) error) error
}

// DrawnCard is one draw result annotated with the user's resulting copy
// count.
type DrawnCard struct {
	CardID      int64  `json:"cardId"`
	Name        string `json:"name"`
	Rarity      string `json:"rarity"`
	Power       int    `json:"power"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ElementName string `json:"elementName"`
	Quantity    int64  `json:"quantity"`
	IsNew       bool   `json:"isNew"`
}

type OpenPackResult struct {
	PackID           int64       `json:"packId"`
	PackName         string      `json:"packName"`
	PackCost         int64       `json:"packCost"`
	DrawnCards       []DrawnCard `json:"drawnCards"`
	CreditsSpent     int64       `json:"creditsSpent"`
	RemainingCredits int64       `json:"remainingCredits"`
}

// Opener coordinates one pack opening: credit debit, weighted draws and
// inventory reconciliation as a single unit of work. It is the only place
// that translates storage failures into the caller-facing error taxonomy.
type Opener struct {
	catalog      CatalogStore
	ledger       CreditLedger
	inventory    InventoryStore
	tx           TxRunner
	src          Source
	cardsPerPack int
}

func NewOpener(catalog CatalogStore, ledger CreditLedger, inventory InventoryStore, tx TxRunner, cardsPerPack int, src Source) *Opener {
	if cardsPerPack <= 0 {
		cardsPerPack = DefaultCardsPerPack
	}
	if src == nil {
		src = NewSource()
	}
	return &Opener{
		catalog:      catalog,
		ledger:       ledger,
		inventory:    inventory,
		tx:           tx,
		src:          src,
		cardsPerPack: cardsPerPack,
	}
}

// OpenPack opens the pack for the user. On any failure after the debit the
// whole operation rolls back: the user never loses credits without
// receiving the full set of cards.
func (o *Opener) OpenPack(ctx context.Context, userID, packID int64) (*OpenPackResult, error) {
	start := time.Now()

	pack, err := o.catalog.GetByID(ctx, packID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pack %d: %w", packID, err)
	}

	combos, err := o.catalog.GetCombinations(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("failed to load combinations for pack %d: %w", packID, err)
	}
	if len(combos) == 0 {
		return nil, ErrEmptyPack
	}
	entries := EntriesFromCombinations(combos)

	result := &OpenPackResult{
		PackID:       pack.ID,
		PackName:     pack.Name,
		PackCost:     pack.Cost,
		CreditsSpent: pack.Cost,
	}

	err = o.tx.RunInTx(ctx, func(ctx context.Context) error {
		var remaining int64
		var err error
		if pack.Cost > 0 {
			remaining, err = o.ledger.Debit(ctx, userID, pack.Cost)
		} else {
			remaining, err = o.ledger.Balance(ctx, userID)
		}
		if err != nil {
			return err
		}

		drawn := Draw(entries, o.cardsPerPack, o.src)

		cards := make([]DrawnCard, 0, len(drawn))
		for _, card := range drawn {
			quantity, isNew, err := o.inventory.Upsert(ctx, userID, card.ID, 1)
			if err != nil {
				return fmt.Errorf("failed to assign card %d: %w", card.ID, err)
			}

			dc := DrawnCard{
				CardID:   card.ID,
				Name:     card.Name,
				Rarity:   card.Rarity,
				Power:    card.Power,
				ImageURL: card.ImageURL,
				Quantity: quantity,
				IsNew:    isNew,
			}
			if card.Element != nil {
				dc.ElementName = card.Element.Name
			}
			cards = append(cards, dc)
		}

		result.DrawnCards = cards
		result.RemainingCredits = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Pack opened",
		slog.Int64("user_id", userID),
		slog.Int64("pack_id", pack.ID),
		slog.Int("cards", len(result.DrawnCards)),
		slog.Int64("spent", result.CreditsSpent),
		slog.Duration("took", time.Since(start)),
	)
	return result, nil
}
