package engine

import (
	"math/rand"

	"github.com/piwi3910/nestcut/internal/model"
)

// OptimizerUnit is one candidate solution in the genetic search: an
// ordered list of bins, the stock budget that produced them, and the set
// of demand pieces that could not be placed. It is generic over a
// packing strategy's heuristic type H so the same type serves both the
// guillotine and MaxRects searches.
type OptimizerUnit[H any] struct {
	factory   BinFactory[H]
	kerfWidth int
	catalogue []model.StockPiece

	budget   *budget
	bins     []Bin[H]
	unplaced map[int]model.InternalPiece

	fitnessCache *float64
}

// NewOptimizerUnit creates an empty unit over the given stock catalogue.
// catalogue is treated as immutable for the unit's whole lifetime; the
// unit's budget is an independent, mutable copy of it.
func NewOptimizerUnit[H any](factory BinFactory[H], kerfWidth int, catalogue []model.StockPiece) *OptimizerUnit[H] {
	return &OptimizerUnit[H]{
		factory:   factory,
		kerfWidth: kerfWidth,
		catalogue: catalogue,
		budget:    newBudget(catalogue),
		unplaced:  make(map[int]model.InternalPiece),
	}
}

// Clone returns an independent copy: bins are deep-cloned, the budget is
// copied, and the unplaced set is copied. The fitness cache is not
// copied, since a clone is only ever made as a prelude to mutating it.
func (u *OptimizerUnit[H]) Clone() *OptimizerUnit[H] {
	bins := make([]Bin[H], len(u.bins))
	for i, b := range u.bins {
		bins[i] = b.Clone()
	}
	unplaced := make(map[int]model.InternalPiece, len(u.unplaced))
	for id, p := range u.unplaced {
		unplaced[id] = p
	}
	return &OptimizerUnit[H]{
		factory:   u.factory,
		kerfWidth: u.kerfWidth,
		catalogue: u.catalogue,
		budget:    u.budget.clone(),
		bins:      bins,
		unplaced:  unplaced,
	}
}

func (u *OptimizerUnit[H]) Bins() []Bin[H] { return u.bins }

func (u *OptimizerUnit[H]) UnplacedPieces() []model.InternalPiece {
	out := make([]model.InternalPiece, 0, len(u.unplaced))
	for _, p := range u.unplaced {
		out = append(out, p)
	}
	return out
}

// firstFit tries every existing bin in order with heuristic h; on total
// failure it opens a new bin from a random fitting, available stock entry.
func (u *OptimizerUnit[H]) firstFit(rng *rand.Rand, piece model.InternalPiece, h H) bool {
	for _, b := range u.bins {
		if b.InsertWithHeuristic(piece, h) {
			return true
		}
	}
	sp, ok := u.budget.randomFittingStock(rng, piece)
	if !ok {
		return false
	}
	newBin := u.factory.New(sp.Width, sp.Length, u.kerfWidth, sp.Direction, sp.Price)
	if !newBin.InsertWithHeuristic(piece, h) {
		return false
	}
	u.bins = append(u.bins, newBin)
	return true
}

// firstFitRandom is firstFit but drawing a fresh random heuristic for
// every insertion attempt, including the one made against a newly opened
// bin.
func (u *OptimizerUnit[H]) firstFitRandom(rng *rand.Rand, piece model.InternalPiece) bool {
	for _, b := range u.bins {
		if b.InsertRandomHeuristic(piece, rng) {
			return true
		}
	}
	sp, ok := u.budget.randomFittingStock(rng, piece)
	if !ok {
		return false
	}
	newBin := u.factory.New(sp.Width, sp.Length, u.kerfWidth, sp.Direction, sp.Price)
	if !newBin.InsertRandomHeuristic(piece, rng) {
		return false
	}
	u.bins = append(u.bins, newBin)
	return true
}

// BuildWithHeuristic inserts every piece of demand, in the order given,
// using the single heuristic h throughout. Pieces that cannot be placed
// are recorded as unplaced rather than failing the whole build.
func (u *OptimizerUnit[H]) BuildWithHeuristic(rng *rand.Rand, demand []model.InternalPiece, h H) {
	for _, p := range demand {
		if !u.firstFit(rng, p, h) {
			u.unplaced[p.ID] = p
		}
	}
	u.fitnessCache = nil
}

// BuildWithRandomHeuristic is BuildWithHeuristic but drawing a fresh
// random heuristic for every single insertion.
func (u *OptimizerUnit[H]) BuildWithRandomHeuristic(rng *rand.Rand, demand []model.InternalPiece) {
	for _, p := range demand {
		if !u.firstFitRandom(rng, p) {
			u.unplaced[p.ID] = p
		}
	}
	u.fitnessCache = nil
}

// Fitness is the average of the unit's per-bin fitnesses (0 if it has no
// bins), minus 1 if any demand piece went unplaced — guaranteeing any
// incomplete unit scores below any complete one. The result is memoized
// until the unit is next mutated or rebuilt.
func (u *OptimizerUnit[H]) Fitness() float64 {
	if u.fitnessCache != nil {
		return *u.fitnessCache
	}
	var f float64
	if len(u.bins) > 0 {
		sum := 0.0
		for _, b := range u.bins {
			sum += b.Fitness()
		}
		f = sum / float64(len(u.bins))
	}
	if len(u.unplaced) > 0 {
		f -= 1
	}
	u.fitnessCache = &f
	return f
}

// cloneBins deep-clones a slice of bins, preserving order.
func cloneBins[H any](bins []Bin[H]) []Bin[H] {
	out := make([]Bin[H], len(bins))
	for i, b := range bins {
		out[i] = b.Clone()
	}
	return out
}

// Crossover breeds self (A) with other (B): a destination index within A
// and a source span within B are drawn at random, and the child's bin
// list becomes A's bins with B's span spliced in at that index. The
// budget is rebuilt from scratch and walked against A's original bins
// (in reverse) to decide which survive without exceeding stock capacity
// or duplicating a piece already present in the injected span; casualties
// and both parents' unplaced pieces are re-inserted with random
// heuristics before the child is returned.
//
// If neither parent has at least two bins there is nothing meaningful to
// splice, so the child is simply a clone of self. A span cannot be drawn
// from an empty B either, which this treats the same way.
func (u *OptimizerUnit[H]) Crossover(rng *rand.Rand, other *OptimizerUnit[H]) *OptimizerUnit[H] {
	if (len(u.bins) < 2 && len(other.bins) < 2) || len(other.bins) == 0 {
		return u.Clone()
	}

	d := rng.Intn(len(u.bins) + 1)
	s := rng.Intn(len(other.bins))
	e := s + 1 + rng.Intn(len(other.bins)-s)

	injected := cloneBins(other.bins[s:e])
	injectedIDs := make(map[int]bool)
	for _, b := range injected {
		for _, pp := range b.PlacedPieces() {
			injectedIDs[pp.Piece.ID] = true
		}
	}

	newB := newBudget(u.catalogue)
	for _, b := range injected {
		for i := range newB.entries {
			if newB.entries[i].remaining != 0 && b.MatchesStockPiece(newB.entries[i].stock) {
				if newB.entries[i].remaining > 0 {
					newB.entries[i].remaining--
				}
				break
			}
		}
	}

	keep := make([]bool, len(u.bins))
	var setAside []model.InternalPiece

	for i := len(u.bins) - 1; i >= 0; i-- {
		b := u.bins[i]
		capacityIndex := -1
		for j := range newB.entries {
			if newB.entries[j].remaining != 0 && b.MatchesStockPiece(newB.entries[j].stock) {
				capacityIndex = j
				break
			}
		}
		if capacityIndex == -1 {
			for _, pp := range b.PlacedPieces() {
				setAside = append(setAside, pp.Piece)
			}
			continue
		}
		duplicate := false
		for _, pp := range b.PlacedPieces() {
			if injectedIDs[pp.Piece.ID] {
				duplicate = true
				break
			}
		}
		if duplicate {
			for _, pp := range b.PlacedPieces() {
				if !injectedIDs[pp.Piece.ID] {
					setAside = append(setAside, pp.Piece)
				}
			}
			continue
		}
		if newB.entries[capacityIndex].remaining > 0 {
			newB.entries[capacityIndex].remaining--
		}
		keep[i] = true
	}

	var childBins []Bin[H]
	for i := 0; i < d; i++ {
		if keep[i] {
			childBins = append(childBins, cloneBins(u.bins[i:i+1])...)
		}
	}
	childBins = append(childBins, injected...)
	for i := d; i < len(u.bins); i++ {
		if keep[i] {
			childBins = append(childBins, cloneBins(u.bins[i:i+1])...)
		}
	}

	child := &OptimizerUnit[H]{
		factory:   u.factory,
		kerfWidth: u.kerfWidth,
		catalogue: u.catalogue,
		budget:    newB,
		bins:      childBins,
		unplaced:  make(map[int]model.InternalPiece),
	}

	var reinsert []model.InternalPiece
	reinsert = append(reinsert, setAside...)
	for _, p := range u.unplaced {
		reinsert = append(reinsert, p)
	}
	for _, p := range other.unplaced {
		reinsert = append(reinsert, p)
	}

	for _, p := range reinsert {
		if !child.firstFitRandom(rng, p) {
			child.unplaced[p.ID] = p
		}
	}

	nonEmpty := childBins[:0:0]
	for _, b := range childBins {
		if len(b.PlacedPieces()) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	child.bins = nonEmpty
	return child
}

// Mutate applies inversion mutation with probability 1/20: a start index
// is drawn in [0, n) and an end index in [start, n), and the bin slice
// bins[start:end] is reversed in place. As in the upstream algorithm this
// can draw end == start, a deliberate no-op left unfixed (see
// DESIGN.md).
func (u *OptimizerUnit[H]) Mutate(rng *rand.Rand) {
	if rng.Intn(20) != 0 {
		return
	}
	n := len(u.bins)
	if n == 0 {
		return
	}
	start := rng.Intn(n)
	end := start + rng.Intn(n-start)
	reverseBins(u.bins[start:end])
	u.fitnessCache = nil
}

func reverseBins[H any](bins []Bin[H]) {
	for i, j := 0, len(bins)-1; i < j; i, j = i+1, j-1 {
		bins[i], bins[j] = bins[j], bins[i]
	}
}

// BreedWith produces one child via Crossover followed by Mutate.
func (u *OptimizerUnit[H]) BreedWith(rng *rand.Rand, other *OptimizerUnit[H]) *OptimizerUnit[H] {
	child := u.Crossover(rng, other)
	child.Mutate(rng)
	return child
}
