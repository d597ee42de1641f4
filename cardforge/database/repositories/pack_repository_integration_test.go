package repositories_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/cardforge-games/cardforge/cardforge/database/repositories"
	"github.com/cardforge-games/cardforge/cardforge/database/testutil"
)

func TestPackRepository_CombinationOrdering(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Fire")
	a := testutil.CreateCard(t, testDB.DB, "Alpha", models.RarityCommon, element.ID, 1)
	b := testutil.CreateCard(t, testDB.DB, "Beta", models.RarityCommon, element.ID, 2)
	c := testutil.CreateCard(t, testDB.DB, "Gamma", models.RarityRare, element.ID, 3)
	pack := testutil.CreatePack(t, testDB.DB, "Starter", 50)

	// Insert out of order; b and c share a rate so their card ids break the tie
	testutil.AddPackCard(t, testDB.DB, pack.ID, c.ID, 0.2)
	testutil.AddPackCard(t, testDB.DB, pack.ID, a.ID, 0.6)
	testutil.AddPackCard(t, testDB.DB, pack.ID, b.ID, 0.2)

	repo := repositories.NewPackRepository(testDB.DB.BunDB())

	combos, err := repo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 3)
	assert.Equal(t, a.ID, combos[0].CardID)
	assert.Equal(t, b.ID, combos[1].CardID)
	assert.Equal(t, c.ID, combos[2].CardID)

	require.NotNil(t, combos[0].Card, "combinations must load the card relation")
	assert.Equal(t, "Alpha", combos[0].Card.Name)
	require.NotNil(t, combos[0].Card.Element)
	assert.Equal(t, "Fire", combos[0].Card.Element.Name)
}

func TestPackRepository_CacheInvalidationOnMutation(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Water")
	card := testutil.CreateCard(t, testDB.DB, "Naiad", models.RarityCommon, element.ID, 2)
	pack := testutil.CreatePack(t, testDB.DB, "Tide Pack", 50)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 0.4)

	repo := repositories.NewPackRepository(testDB.DB.BunDB())

	combos, err := repo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, 0.4, combos[0].DropRate)

	require.NoError(t, repo.UpdateDropRate(ctx, pack.ID, card.ID, 0.9))

	combos, err = repo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, 0.9, combos[0].DropRate, "cached table must be refreshed after a rate change")

	require.NoError(t, repo.RemoveCard(ctx, pack.ID, card.ID))

	combos, err = repo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	assert.Empty(t, combos)
}

func TestPackRepository_CombinationNotFound(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	pack := testutil.CreatePack(t, testDB.DB, "Empty Pack", 10)
	repo := repositories.NewPackRepository(testDB.DB.BunDB())

	err := repo.UpdateDropRate(ctx, pack.ID, 12345, 0.5)
	assert.ErrorIs(t, err, repositories.ErrCombinationNotFound)

	err = repo.RemoveCard(ctx, pack.ID, 12345)
	assert.ErrorIs(t, err, repositories.ErrCombinationNotFound)
}

func TestPackRepository_DeleteCascadesCombinations(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Dark")
	card := testutil.CreateCard(t, testDB.DB, "Shade", models.RarityEpic, element.ID, 6)
	pack := testutil.CreatePack(t, testDB.DB, "Night Pack", 75)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 1.0)

	repo := repositories.NewPackRepository(testDB.DB.BunDB())

	require.NoError(t, repo.Delete(ctx, pack.ID))

	_, err := repo.GetByID(ctx, pack.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	count, err := testDB.DB.BunDB().NewSelect().
		Model((*models.PackCombination)(nil)).
		Where("pack_id = ?", pack.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPackRepository_AddCardRejectsDuplicate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Fire")
	card := testutil.CreateCard(t, testDB.DB, "Imp", models.RarityCommon, element.ID, 1)
	pack := testutil.CreatePack(t, testDB.DB, "Brimstone", 25)

	repo := repositories.NewPackRepository(testDB.DB.BunDB())

	require.NoError(t, repo.AddCard(ctx, &models.PackCombination{
		PackID: pack.ID, CardID: card.ID, DropRate: 0.5,
	}))
	err := repo.AddCard(ctx, &models.PackCombination{
		PackID: pack.ID, CardID: card.ID, DropRate: 0.3,
	})
	assert.Error(t, err, "the pack/card pair is unique")
}
