package engine

import (
	"math/rand"

	"github.com/piwi3910/nestcut/internal/model"
)

// Bin is the capability set the genetic layer needs from a packing
// strategy. Neither Population nor OptimizerUnit know anything about
// guillotine or MaxRects specifically; they only ever touch a Bin through
// this interface, parameterized by that strategy's heuristic tuple type H.
type Bin[H any] interface {
	// InsertWithHeuristic attempts to place piece using heuristic h. It
	// reports whether the piece was placed.
	InsertWithHeuristic(piece model.InternalPiece, h H) bool

	// InsertRandomHeuristic draws a heuristic from the strategy's random
	// distribution (excluding Worst-* variants) and attempts to place piece.
	InsertRandomHeuristic(piece model.InternalPiece, rng *rand.Rand) bool

	// RemovePieces deletes any placed piece whose ID is in ids, returning
	// their area to the bin's free space, and reports how many were removed.
	RemovePieces(ids map[int]bool) int

	// PlacedPieces enumerates everything currently placed in the bin.
	PlacedPieces() []model.PlacedPiece

	// Fitness scores how well this bin's interior is used, in [0, 1].
	Fitness() float64

	// Price is the unit price of the stock piece backing this bin.
	Price() int

	// MatchesStockPiece reports whether this bin was cut from stock
	// equivalent to sp (same width, length, direction, price).
	MatchesStockPiece(sp model.StockPiece) bool

	// ToResult converts the bin into its external representation.
	ToResult() model.ResultStockPiece

	// Clone returns an independent deep copy, so crossover can clone bin
	// slices without aliasing free-rectangle or placed-piece state.
	Clone() Bin[H]
}

// BinFactory bundles the operations needed to construct bins of a given
// packing strategy and to enumerate its heuristic space. It stands in for
// the "new" and "enumerate heuristics" entries of the Bin capability set,
// which Go interfaces cannot express as associated/static functions.
type BinFactory[H any] struct {
	// New constructs an empty bin for a stock piece with the given
	// dimensions, grain direction, kerf width, and unit price.
	New func(width, length, kerfWidth int, direction model.PatternDirection, price int) Bin[H]

	// Heuristics is the full, bit-exact enumeration of heuristic tuples for
	// this strategy (36 for guillotine, 10 for MaxRects).
	Heuristics []H

	// RandomHeuristic draws one heuristic from the strategy's random
	// distribution, which excludes any Worst-* choice rule.
	RandomHeuristic func(rng *rand.Rand) H
}
