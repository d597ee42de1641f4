package gacha

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

// scriptedSource replays a fixed sequence of random values.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func testEntries() []Entry {
	return []Entry{
		{Card: &models.Card{ID: 1, Name: "Common", Rarity: models.RarityCommon}, Weight: 60},
		{Card: &models.Card{ID: 2, Name: "Rare", Rarity: models.RarityRare}, Weight: 30},
		{Card: &models.Card{ID: 3, Name: "Legendary", Rarity: models.RarityLegendary}, Weight: 10},
	}
}

func TestDraw_SelectionByCumulativeWeight(t *testing.T) {
	tests := []struct {
		name     string
		float    float64
		wantCard int64
	}{
		{name: "start of range", float: 0, wantCard: 1},
		{name: "inside first interval", float: 0.59, wantCard: 1},
		{name: "start of second interval", float: 0.60, wantCard: 2},
		{name: "inside second interval", float: 0.89, wantCard: 2},
		{name: "start of third interval", float: 0.90, wantCard: 3},
		{name: "end of range", float: 0.999, wantCard: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{floats: []float64{tt.float}}
			got := Draw(testEntries(), 1, src)
			if len(got) != 1 {
				t.Fatalf("Draw() returned %d cards, want 1", len(got))
			}
			if got[0].ID != tt.wantCard {
				t.Errorf("Draw() selected card %d, want %d", got[0].ID, tt.wantCard)
			}
		})
	}
}

func TestDraw_ReturnsExactlyCount(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	for _, count := range []int{1, 5, 20} {
		got := Draw(testEntries(), count, src)
		if len(got) != count {
			t.Errorf("Draw(count=%d) returned %d cards", count, len(got))
		}
	}
}

func TestDraw_SeededSequenceIsDeterministic(t *testing.T) {
	first := Draw(testEntries(), 10, rand.New(rand.NewSource(42)))
	second := Draw(testEntries(), 10, rand.New(rand.NewSource(42)))
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("draw %d differs between identically seeded runs: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestDraw_ZeroWeightCardIsNeverSelected(t *testing.T) {
	entries := []Entry{
		{Card: &models.Card{ID: 1, Name: "Droppable"}, Weight: 5},
		{Card: &models.Card{ID: 2, Name: "Disabled"}, Weight: 0},
	}

	src := rand.New(rand.NewSource(7))
	for _, card := range Draw(entries, 10000, src) {
		if card.ID == 2 {
			t.Fatal("card with drop rate 0 was selected")
		}
	}
}

func TestDraw_BoundaryValueFallsBackToUniformPick(t *testing.T) {
	// Float64 pinned to 1.0 drives r to the exact total weight, which no
	// cumulative sum strictly exceeds; the draw must fall back to a uniform
	// pick instead of returning nothing.
	src := &scriptedSource{floats: []float64{1.0}, ints: []int{2}}
	got := Draw(testEntries(), 1, src)
	if len(got) != 1 {
		t.Fatalf("Draw() returned %d cards, want 1", len(got))
	}
	if got[0].ID != 3 {
		t.Errorf("fallback selected card %d, want uniform pick of card 3", got[0].ID)
	}
}

func TestDraw_AllZeroWeightsSelectUniformly(t *testing.T) {
	entries := []Entry{
		{Card: &models.Card{ID: 1}, Weight: 0},
		{Card: &models.Card{ID: 2}, Weight: 0},
		{Card: &models.Card{ID: 3}, Weight: 0},
	}

	src := &scriptedSource{ints: []int{0, 1, 2}}
	got := Draw(entries, 3, src)
	want := []int64{1, 2, 3}
	for i := range got {
		if got[i].ID != want[i] {
			t.Errorf("draw %d selected card %d, want %d", i, got[i].ID, want[i])
		}
	}
}

func TestDraw_TiesBreakByCardID(t *testing.T) {
	entries := []Entry{
		{Card: &models.Card{ID: 9}, Weight: 10},
		{Card: &models.Card{ID: 3}, Weight: 10},
	}

	// r = 0 lands in the first interval of the stable order, which must be
	// the lower card id.
	src := &scriptedSource{floats: []float64{0}}
	got := Draw(entries, 1, src)
	if got[0].ID != 3 {
		t.Errorf("tie broke to card %d, want 3", got[0].ID)
	}
}

// The production source is shared by every opening on a single Opener, so
// concurrent draws must be safe. Run with the race detector enabled.
func TestDraw_ProductionSourceConcurrentUse(t *testing.T) {
	src := NewSource()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := Draw(testEntries(), 5, src); len(got) != 5 {
					t.Errorf("Draw() returned %d cards, want 5", len(got))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDraw_EmptyEntriesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Draw() with empty entries did not panic")
		}
	}()
	Draw(nil, 5, &scriptedSource{floats: []float64{0}})
}
