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

func TestCardRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Fire")
	repo := repositories.NewCardRepository(testDB.DB.BunDB(), nil)

	card := &models.Card{
		Name:      "Ember Wisp",
		Rarity:    models.RarityCommon,
		ElementID: element.ID,
		Power:     2,
	}
	require.NoError(t, repo.Create(ctx, card))
	require.NotZero(t, card.ID)

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ember Wisp", got.Name)
	require.NotNil(t, got.Element, "GetByID must load the element relation")
	assert.Equal(t, "Fire", got.Element.Name)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCardRepository_SafeDeleteBlockedByOwnership(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Earth")
	card := testutil.CreateCard(t, testDB.DB, "Golem", models.RarityEpic, element.ID, 8)
	pack := testutil.CreatePack(t, testDB.DB, "Stone Pack", 100)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 1.0)

	user := testutil.CreateUser(t, testDB.DB, "owner", 0)
	testutil.GrantCard(t, testDB.DB, user.ID, card.ID, 3)

	repo := repositories.NewCardRepository(testDB.DB.BunDB(), nil)

	report, err := repo.SafeDelete(ctx, card.ID)
	require.NoError(t, err)
	assert.False(t, report.Deleted)
	assert.Equal(t, "card is owned by users", report.BlockedBy)
	assert.Equal(t, int64(3), report.OwnedCopies)
	assert.Equal(t, 1, report.OwningUsers)
	assert.Equal(t, 1, report.PackEntries)

	// Card and its pack entry must both survive a blocked delete
	_, err = repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	count, err := testDB.DB.BunDB().NewSelect().
		Model((*models.PackCombination)(nil)).
		Where("card_id = ?", card.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCardRepository_SafeDeleteRemovesPackEntries(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Wind")
	card := testutil.CreateCard(t, testDB.DB, "Sylph", models.RarityRare, element.ID, 4)
	pack := testutil.CreatePack(t, testDB.DB, "Gale Pack", 50)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 0.5)

	repo := repositories.NewCardRepository(testDB.DB.BunDB(), nil)

	report, err := repo.SafeDelete(ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, report.Deleted)
	assert.Empty(t, report.BlockedBy)
	assert.Equal(t, 1, report.PackEntries)

	_, err = repo.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	count, err := testDB.DB.BunDB().NewSelect().
		Model((*models.PackCombination)(nil)).
		Where("card_id = ?", card.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "drop-table entries must be removed with the card")
}

// Cached combination tables embed card fields; a card update must not leave
// stale names or rarities in subsequent draws.
func TestCardRepository_UpdateRefreshesCombinationCache(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Fire")
	card := testutil.CreateCard(t, testDB.DB, "Spark", models.RarityCommon, element.ID, 1)
	pack := testutil.CreatePack(t, testDB.DB, "Kindling", 10)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 1.0)

	packRepo := repositories.NewPackRepository(testDB.DB.BunDB())
	cardRepo := repositories.NewCardRepository(testDB.DB.BunDB(), packRepo)

	combos, err := packRepo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, "Spark", combos[0].Card.Name)

	card.Name = "Wildfire"
	require.NoError(t, cardRepo.Update(ctx, card))

	combos, err = packRepo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, "Wildfire", combos[0].Card.Name)
}

// A deleted card must also drop out of warmed combination caches.
func TestCardRepository_SafeDeleteRefreshesCombinationCache(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Dark")
	card := testutil.CreateCard(t, testDB.DB, "Wraith", models.RarityRare, element.ID, 5)
	pack := testutil.CreatePack(t, testDB.DB, "Haunt", 25)
	testutil.AddPackCard(t, testDB.DB, pack.ID, card.ID, 1.0)

	packRepo := repositories.NewPackRepository(testDB.DB.BunDB())
	cardRepo := repositories.NewCardRepository(testDB.DB.BunDB(), packRepo)

	combos, err := packRepo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	require.Len(t, combos, 1)

	report, err := cardRepo.SafeDelete(ctx, card.ID)
	require.NoError(t, err)
	require.True(t, report.Deleted)

	combos, err = packRepo.GetCombinations(ctx, pack.ID)
	require.NoError(t, err)
	assert.Empty(t, combos)
}

func TestCardRepository_UpdatePersistsChanges(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	element := testutil.CreateElement(t, testDB.DB, "Light")
	card := testutil.CreateCard(t, testDB.DB, "Seraph", models.RarityLegendary, element.ID, 9)

	repo := repositories.NewCardRepository(testDB.DB.BunDB(), nil)

	card.Power = 10
	card.Name = "Seraph Ascendant"
	require.NoError(t, repo.Update(ctx, card))

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seraph Ascendant", got.Name)
	assert.Equal(t, 10, got.Power)
}
