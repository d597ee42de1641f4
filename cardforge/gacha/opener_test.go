package gacha

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
	"github.com/cardforge-games/cardforge/cardforge/economy"
	"github.com/cardforge-games/cardforge/cardforge/gacha/mock"
)

type fakeLedger struct {
	balance int64
}

func (f *fakeLedger) Balance(ctx context.Context, userID int64) (int64, error) {
	return f.balance, nil
}

func (f *fakeLedger) Debit(ctx context.Context, userID, amount int64) (int64, error) {
	if f.balance < amount {
		return 0, &economy.InsufficientCreditsError{Required: amount, Current: f.balance}
	}
	f.balance -= amount
	return f.balance, nil
}

type fakeInventory struct {
	quantities map[int64]int64
	upserts    int
	failAfter  int // fail on the Nth upsert when > 0
}

func (f *fakeInventory) Upsert(ctx context.Context, userID, cardID, delta int64) (int64, bool, error) {
	f.upserts++
	if f.failAfter > 0 && f.upserts >= f.failAfter {
		return 0, false, errors.New("inventory write failed")
	}
	if f.quantities == nil {
		f.quantities = make(map[int64]int64)
	}
	prev, owned := f.quantities[cardID]
	f.quantities[cardID] = prev + delta
	return prev + delta, !owned, nil
}

// fakeTx snapshots ledger and inventory state and restores it when fn
// errors, mirroring a real transaction rollback.
type fakeTx struct {
	ledger    *fakeLedger
	inventory *fakeInventory
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	balance := f.ledger.balance
	quantities := make(map[int64]int64, len(f.inventory.quantities))
	for k, v := range f.inventory.quantities {
		quantities[k] = v
	}

	if err := fn(ctx); err != nil {
		f.ledger.balance = balance
		f.inventory.quantities = quantities
		return err
	}
	return nil
}

func testPack() *models.Pack {
	return &models.Pack{ID: 10, Name: "Starter Pack", Cost: 50}
}

func testCombinations() []*models.PackCombination {
	return []*models.PackCombination{
		{PackID: 10, CardID: 1, DropRate: 60, Card: &models.Card{ID: 1, Name: "Common", Rarity: models.RarityCommon, Element: &models.Element{Name: "Water"}}},
		{PackID: 10, CardID: 2, DropRate: 30, Card: &models.Card{ID: 2, Name: "Rare", Rarity: models.RarityRare}},
		{PackID: 10, CardID: 3, DropRate: 10, Card: &models.Card{ID: 3, Name: "Legendary", Rarity: models.RarityLegendary}},
	}
}

type openerFixture struct {
	catalog   *mock.MockCatalogStore
	ledger    *fakeLedger
	inventory *fakeInventory
	opener    *Opener
}

func newOpenerFixture(t *testing.T, balance int64, src Source) *openerFixture {
	ctrl := gomock.NewController(t)
	f := &openerFixture{
		catalog:   mock.NewMockCatalogStore(ctrl),
		ledger:    &fakeLedger{balance: balance},
		inventory: &fakeInventory{},
	}
	tx := &fakeTx{ledger: f.ledger, inventory: f.inventory}
	f.opener = NewOpener(f.catalog, f.ledger, f.inventory, tx, DefaultCardsPerPack, src)
	return f
}

func TestOpenPack_DebitsAndAssignsFullSet(t *testing.T) {
	// Float64 pinned to 0 keeps every draw in the heaviest interval.
	src := &scriptedSource{floats: []float64{0}}
	f := newOpenerFixture(t, 50, src)

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testPack(), nil)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(10)).Return(testCombinations(), nil)

	result, err := f.opener.OpenPack(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}

	if len(result.DrawnCards) != DefaultCardsPerPack {
		t.Fatalf("drew %d cards, want %d", len(result.DrawnCards), DefaultCardsPerPack)
	}
	if result.CreditsSpent != 50 || result.RemainingCredits != 0 {
		t.Errorf("spent %d remaining %d, want 50 and 0", result.CreditsSpent, result.RemainingCredits)
	}
	if f.ledger.balance != 0 {
		t.Errorf("ledger balance = %d after opening, want 0", f.ledger.balance)
	}

	for i, dc := range result.DrawnCards {
		if dc.CardID != 1 {
			t.Errorf("draw %d selected card %d, want the heaviest card 1", i, dc.CardID)
		}
		if want := int64(i + 1); dc.Quantity != want {
			t.Errorf("draw %d quantity = %d, want %d", i, dc.Quantity, want)
		}
		if dc.IsNew != (i == 0) {
			t.Errorf("draw %d isNew = %v, want %v", i, dc.IsNew, i == 0)
		}
	}
	if result.DrawnCards[0].ElementName != "Water" {
		t.Errorf("element name = %q, want Water", result.DrawnCards[0].ElementName)
	}
}

func TestOpenPack_InsufficientCredits(t *testing.T) {
	f := newOpenerFixture(t, 10, &scriptedSource{floats: []float64{0}})

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testPack(), nil)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(10)).Return(testCombinations(), nil)

	_, err := f.opener.OpenPack(context.Background(), 1, 10)

	var insufficient *economy.InsufficientCreditsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("OpenPack() error = %v, want InsufficientCreditsError", err)
	}
	if insufficient.Required != 50 || insufficient.Current != 10 {
		t.Errorf("error reports required %d current %d, want 50 and 10", insufficient.Required, insufficient.Current)
	}
	if f.ledger.balance != 10 {
		t.Errorf("balance = %d after failed opening, want untouched 10", f.ledger.balance)
	}
	if len(f.inventory.quantities) != 0 {
		t.Error("cards were assigned despite the failed debit")
	}
}

func TestOpenPack_PackNotFound(t *testing.T) {
	f := newOpenerFixture(t, 100, &scriptedSource{floats: []float64{0}})

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, sql.ErrNoRows)

	_, err := f.opener.OpenPack(context.Background(), 1, 99)
	if !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("OpenPack() error = %v, want ErrPackNotFound", err)
	}
}

func TestOpenPack_EmptyPackDoesNotDebit(t *testing.T) {
	f := newOpenerFixture(t, 100, &scriptedSource{floats: []float64{0}})

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testPack(), nil)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(10)).Return(nil, nil)

	_, err := f.opener.OpenPack(context.Background(), 1, 10)
	if !errors.Is(err, ErrEmptyPack) {
		t.Fatalf("OpenPack() error = %v, want ErrEmptyPack", err)
	}
	if f.ledger.balance != 100 {
		t.Errorf("balance = %d after empty pack, want untouched 100", f.ledger.balance)
	}
}

func TestOpenPack_InventoryFailureRollsBackDebit(t *testing.T) {
	f := newOpenerFixture(t, 100, &scriptedSource{floats: []float64{0}})
	f.inventory.failAfter = 3

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testPack(), nil)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(10)).Return(testCombinations(), nil)

	_, err := f.opener.OpenPack(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("OpenPack() succeeded despite inventory failure")
	}
	if f.ledger.balance != 100 {
		t.Errorf("balance = %d after rollback, want restored 100", f.ledger.balance)
	}
	if len(f.inventory.quantities) != 0 {
		t.Error("partial card assignments survived the rollback")
	}
}

func TestOpenPack_FreePackSkipsDebit(t *testing.T) {
	f := newOpenerFixture(t, 25, &scriptedSource{floats: []float64{0}})

	free := &models.Pack{ID: 11, Name: "Daily Freebie", Cost: 0}
	f.catalog.EXPECT().GetByID(gomock.Any(), int64(11)).Return(free, nil)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(11)).Return(testCombinations(), nil)

	result, err := f.opener.OpenPack(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}
	if result.CreditsSpent != 0 || result.RemainingCredits != 25 {
		t.Errorf("spent %d remaining %d, want 0 and 25", result.CreditsSpent, result.RemainingCredits)
	}
}

func TestOpenPack_SecondOpeningAccumulatesQuantities(t *testing.T) {
	src := &scriptedSource{floats: []float64{0}}
	f := newOpenerFixture(t, 100, src)

	f.catalog.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testPack(), nil).Times(2)
	f.catalog.EXPECT().GetCombinations(gomock.Any(), int64(10)).Return(testCombinations(), nil).Times(2)

	if _, err := f.opener.OpenPack(context.Background(), 1, 10); err != nil {
		t.Fatalf("first OpenPack() error = %v", err)
	}
	second, err := f.opener.OpenPack(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("second OpenPack() error = %v", err)
	}

	for i, dc := range second.DrawnCards {
		if dc.IsNew {
			t.Errorf("draw %d reported as new on the second opening", i)
		}
		if want := int64(DefaultCardsPerPack + i + 1); dc.Quantity != want {
			t.Errorf("draw %d quantity = %d, want %d", i, dc.Quantity, want)
		}
	}
	if second.RemainingCredits != 0 {
		t.Errorf("remaining = %d after two 50-credit packs, want 0", second.RemainingCredits)
	}
}
