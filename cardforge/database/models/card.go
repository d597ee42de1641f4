package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rarity tiers, from most to least common.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

func ValidRarity(r string) bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Rarity    string    `bun:"rarity,notnull"`
	ElementID int64     `bun:"element_id,notnull"`
	Power     int       `bun:"power,notnull"`
	ImageURL  string    `bun:"image_url"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	// Relations
	Element *Element `bun:"rel:belongs-to,join:element_id=id"`
}

// DeletionReport describes why a card deletion was refused or what it removed.
type DeletionReport struct {
	CardID       int64  `json:"card_id"`
	CardName     string `json:"card_name"`
	Deleted      bool   `json:"deleted"`
	OwnedCopies  int64  `json:"owned_copies"`
	OwningUsers  int    `json:"owning_users"`
	PackEntries  int    `json:"pack_entries"`
	BlockedBy    string `json:"blocked_by,omitempty"`
}
