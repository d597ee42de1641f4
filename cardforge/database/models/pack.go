package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Pack struct {
	bun.BaseModel `bun:"table:packs,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull,unique"`
	Cost      int64     `bun:"cost,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// PackCombination is one row of a pack's drop-rate table. Drop rates are
// relative weights and are not required to sum to 100 across a pack.
type PackCombination struct {
	bun.BaseModel `bun:"table:pack_combinations,alias:pc"`

	ID       int64   `bun:"id,pk,autoincrement"`
	PackID   int64   `bun:"pack_id,notnull"`
	CardID   int64   `bun:"card_id,notnull"`
	DropRate float64 `bun:"drop_rate,notnull"`

	// Relations
	Pack *Pack `bun:"rel:belongs-to,join:pack_id=id"`
	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}
