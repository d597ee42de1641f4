package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cardforge-games/cardforge/cardforge/database"
	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

// CreateUser inserts a user with the given balance and returns it.
func CreateUser(t *testing.T, db *database.DB, username string, credits int64) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Credits:      credits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := db.BunDB().NewInsert().Model(user).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return user
}

// CreateElement inserts an element.
func CreateElement(t *testing.T, db *database.DB, name string) *models.Element {
	t.Helper()

	element := &models.Element{Name: name}
	_, err := db.BunDB().NewInsert().Model(element).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return element
}

// CreateCard inserts a card bound to the element.
func CreateCard(t *testing.T, db *database.DB, name, rarity string, elementID int64, power int) *models.Card {
	t.Helper()

	now := time.Now()
	card := &models.Card{
		Name:      name,
		Rarity:    rarity,
		ElementID: elementID,
		Power:     power,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.BunDB().NewInsert().Model(card).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return card
}

// CreatePack inserts a pack with the given cost.
func CreatePack(t *testing.T, db *database.DB, name string, cost int64) *models.Pack {
	t.Helper()

	pack := &models.Pack{Name: name, Cost: cost, CreatedAt: time.Now()}
	_, err := db.BunDB().NewInsert().Model(pack).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return pack
}

// AddPackCard inserts a drop-table entry.
func AddPackCard(t *testing.T, db *database.DB, packID, cardID int64, dropRate float64) *models.PackCombination {
	t.Helper()

	combo := &models.PackCombination{PackID: packID, CardID: cardID, DropRate: dropRate}
	_, err := db.BunDB().NewInsert().Model(combo).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return combo
}

// GrantCard inserts an owned-card row.
func GrantCard(t *testing.T, db *database.DB, userID, cardID, quantity int64) *models.OwnedCard {
	t.Helper()

	owned := &models.OwnedCard{UserID: userID, CardID: cardID, Quantity: quantity, AcquiredDate: time.Now()}
	_, err := db.BunDB().NewInsert().Model(owned).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return owned
}
