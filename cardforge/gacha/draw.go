package gacha

import (
	"sort"

	"github.com/cardforge-games/cardforge/cardforge/database/models"
)

// DefaultCardsPerPack is the number of draws per pack opening unless
// configured otherwise.
const DefaultCardsPerPack = 5

// Entry is one weighted row of a pack's drop-rate table. Weights are
// relative; they are normalized against their actual sum, not a fixed 100.
type Entry struct {
	Card   *models.Card
	Weight float64
}

// EntriesFromCombinations converts a loaded combination table into draw
// entries. Combination rows must carry their Card relation.
func EntriesFromCombinations(combos []*models.PackCombination) []Entry {
	entries := make([]Entry, 0, len(combos))
	for _, combo := range combos {
		entries = append(entries, Entry{Card: combo.Card, Weight: combo.DropRate})
	}
	return entries
}

// Draw performs count independent weighted selections over entries and
// returns the drawn cards in draw order. The same card may be drawn more
// than once.
//
// Entries are walked in descending weight order, ties broken by ascending
// card id, so the mapping from random values to cards is stable for a given
// weight configuration. Each draw picks a uniform r in [0, totalWeight) and
// selects the first entry whose cumulative weight passes r. If no entry is
// reached — all weights zero, or r driven to the total by rounding — the
// draw falls back to a uniform pick across the full table.
//
// An empty entry list or a non-positive count is a precondition violation
// and panics.
func Draw(entries []Entry, count int, src Source) []*models.Card {
	if len(entries) == 0 {
		panic("gacha: draw from empty entry list")
	}
	if count < 1 {
		panic("gacha: draw count must be at least 1")
	}

	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Weight != ordered[j].Weight {
			return ordered[i].Weight > ordered[j].Weight
		}
		return ordered[i].Card.ID < ordered[j].Card.ID
	})

	var total float64
	for _, e := range ordered {
		if e.Weight < 0 {
			panic("gacha: negative drop rate")
		}
		total += e.Weight
	}

	drawn := make([]*models.Card, 0, count)
	for i := 0; i < count; i++ {
		drawn = append(drawn, drawOne(ordered, total, src))
	}
	return drawn
}

func drawOne(ordered []Entry, total float64, src Source) *models.Card {
	if total > 0 {
		r := src.Float64() * total
		var cumulative float64
		for _, e := range ordered {
			cumulative += e.Weight
			// Strict comparison keeps zero-width intervals unselectable:
			// a zero-weight entry never advances the cumulative sum past r.
			if r < cumulative {
				return e.Card
			}
		}
	}

	// All-zero weights, or floating-point accumulation never reached r.
	return ordered[src.Intn(len(ordered))].Card
}
