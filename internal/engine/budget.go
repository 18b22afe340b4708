package engine

import (
	"math/rand"

	"github.com/piwi3910/nestcut/internal/model"
)

// budgetEntry is one stock catalogue line together with how many more
// bins may still be cut from it. remaining < 0 means unlimited.
type budgetEntry struct {
	stock     model.StockPiece
	remaining int
}

// budget is a unit's owned, mutable view of a shared, immutable stock
// catalogue: drawing a bin from the budget decrements the matching
// entry's remaining count.
type budget struct {
	entries []budgetEntry
}

func newBudget(catalogue []model.StockPiece) *budget {
	entries := make([]budgetEntry, len(catalogue))
	for i, sp := range catalogue {
		remaining := -1
		if sp.Quantity != nil {
			remaining = *sp.Quantity
		}
		entries[i] = budgetEntry{stock: sp, remaining: remaining}
	}
	return &budget{entries: entries}
}

func (b *budget) clone() *budget {
	return &budget{entries: append([]budgetEntry(nil), b.entries...)}
}

func stockEquivalent(a, b model.StockPiece) bool {
	return a.Width == b.Width && a.Length == b.Length &&
		a.Direction == b.Direction && a.Price == b.Price
}

// stockFits reports whether a piece could be placed, in principle, onto a
// fresh bin cut from sp: either orientation must satisfy the grain
// constraint and not exceed the stock's dimensions.
func stockFits(sp model.StockPiece, piece model.InternalPiece) bool {
	free := model.Rect{X: 0, Y: 0, Width: sp.Width, Length: sp.Length}
	if !classifyFit(free, sp.Direction, piece, false).IsNone() {
		return true
	}
	return !classifyFit(free, sp.Direction, piece, true).IsNone()
}

// hasCapacityFor reports whether the budget could still produce a bin
// equivalent to sp.
func (b *budget) hasCapacityFor(sp model.StockPiece) bool {
	for _, e := range b.entries {
		if stockEquivalent(e.stock, sp) && e.remaining != 0 {
			return true
		}
	}
	return false
}

// decrementFor consumes one unit of capacity for a bin equivalent to sp,
// reporting whether capacity was available.
func (b *budget) decrementFor(sp model.StockPiece) bool {
	for i := range b.entries {
		if stockEquivalent(b.entries[i].stock, sp) && b.entries[i].remaining != 0 {
			if b.entries[i].remaining > 0 {
				b.entries[i].remaining--
			}
			return true
		}
	}
	return false
}

// randomFittingStock draws a uniformly random stock entry with remaining
// capacity that can accommodate piece, and decrements it. Returns false
// if no such entry exists.
func (b *budget) randomFittingStock(rng *rand.Rand, piece model.InternalPiece) (model.StockPiece, bool) {
	var candidates []int
	for i, e := range b.entries {
		if e.remaining != 0 && stockFits(e.stock, piece) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return model.StockPiece{}, false
	}
	idx := candidates[rng.Intn(len(candidates))]
	if b.entries[idx].remaining > 0 {
		b.entries[idx].remaining--
	}
	return b.entries[idx].stock, true
}
