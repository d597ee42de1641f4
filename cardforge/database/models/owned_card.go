package models

import (
	"time"

	"github.com/uptrace/bun"
)

// OwnedCard tracks how many copies of a card a user holds. Absence of a row
// means zero owned; quantity never drops below one, crossing zero deletes
// the row.
type OwnedCard struct {
	bun.BaseModel `bun:"table:owned_cards,alias:oc"`

	ID           int64     `bun:"id,pk,autoincrement"`
	UserID       int64     `bun:"user_id,notnull"`
	CardID       int64     `bun:"card_id,notnull"`
	Quantity     int64     `bun:"quantity,notnull,default:1"`
	AcquiredDate time.Time `bun:"acquired_date,notnull,default:current_timestamp"`

	// Relations
	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}
