package engine

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/piwi3910/nestcut/internal/model"
)

// driverEpochs is the fixed epoch budget for every population run.
const driverEpochs = 100

// generateInitialUnits seeds a run's starting population. One unit is
// built per heuristic over demand sorted descending by (width, length);
// if there are more than two demand pieces, a second batch repeats that
// one-per-heuristic pass over a single shuffled order, and any remaining
// slots up to numUnits(demand, heuristics) are filled with units built
// from per-insertion random heuristics over freshly shuffled orders.
func generateInitialUnits[H any](factory BinFactory[H], kerf int, stock []model.StockPiece, demand []model.InternalPiece, rng *rand.Rand) []*OptimizerUnit[H] {
	target := numUnits(demand, len(factory.Heuristics))

	sorted := append([]model.InternalPiece(nil), demand...)
	sort.Slice(sorted, func(i, j int) bool {
		return lessDescendingWidthLength(sorted[i].Width, sorted[i].Length, sorted[j].Width, sorted[j].Length)
	})

	units := make([]*OptimizerUnit[H], 0, target)
	for _, h := range factory.Heuristics {
		u := NewOptimizerUnit(factory, kerf, stock)
		u.BuildWithHeuristic(rng, sorted, h)
		units = append(units, u)
	}

	if len(demand) > 2 {
		shuffled := shuffledCopy(demand, rng)
		for _, h := range factory.Heuristics {
			u := NewOptimizerUnit(factory, kerf, stock)
			u.BuildWithHeuristic(rng, shuffled, h)
			units = append(units, u)
		}
		for len(units) < target {
			order := shuffledCopy(demand, rng)
			u := NewOptimizerUnit(factory, kerf, stock)
			u.BuildWithRandomHeuristic(rng, order)
			units = append(units, u)
		}
	}
	return units
}

// numUnits is the initial-population-size formula: below three demand
// pieces it is just the heuristic count; otherwise it scales with demand
// size and shape diversity, floored at three heuristic sets.
func numUnits(demand []model.InternalPiece, heuristicCount int) int {
	n := len(demand)
	if n < 3 {
		return heuristicCount
	}
	shapes := uniqueShapeCount(demand)
	scaled := int(math.Floor(float64(n)/math.Log10(float64(n)))) + 10*(shapes-1)
	return max(3*heuristicCount, scaled)
}

type shapeKey struct {
	width, length int
	canRotate     bool
	direction     model.PatternDirection
}

func uniqueShapeCount(demand []model.InternalPiece) int {
	seen := make(map[shapeKey]bool)
	for _, p := range demand {
		seen[shapeKey{p.Width, p.Length, p.CanRotate, p.Direction}] = true
	}
	return len(seen)
}

func lessDescendingWidthLength(aw, al, bw, bl int) bool {
	if aw != bw {
		return aw > bw
	}
	return al > bl
}

func shuffledCopy(pieces []model.InternalPiece, rng *rand.Rand) []model.InternalPiece {
	out := append([]model.InternalPiece(nil), pieces...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// unitToSolution converts a unit's bins into the external Solution shape,
// summing bin prices and carrying the unit's own memoized fitness.
func unitToSolution[H any](u *OptimizerUnit[H]) model.Solution {
	bins := u.Bins()
	stockPieces := make([]model.ResultStockPiece, len(bins))
	price := 0
	for i, b := range bins {
		stockPieces[i] = b.ToResult()
		price += b.Price()
	}
	return model.Solution{
		Fitness:     u.Fitness(),
		StockPieces: stockPieces,
		Price:       price,
	}
}

func sortResultStockDescending(pieces []model.ResultStockPiece) {
	sort.Slice(pieces, func(i, j int) bool {
		return lessDescendingWidthLength(pieces[i].Width, pieces[i].Length, pieces[j].Width, pieces[j].Length)
	})
}

// runResult is one stock-size run's outcome: its Solution (possibly with
// negative fitness, meaning incomplete), the unplaced pieces behind that,
// and any hard error (e.g. context cancellation).
type runResult struct {
	sol      model.Solution
	unplaced []model.InternalPiece
	err      error
}

// runOneRun evolves one population over a single stock catalogue and
// harvests its fittest unit.
func runOneRun[H any](ctx context.Context, factory BinFactory[H], stock []model.StockPiece, demand []model.InternalPiece, kerf int, seed int64, progress func(float64)) runResult {
	rng := rand.New(rand.NewSource(seed))
	units := generateInitialUnits(factory, kerf, stock, demand, rng)
	if len(units) == 0 {
		return runResult{sol: model.Solution{Fitness: -1}}
	}

	pop := NewPopulation(units)
	pop.SetSeed(seed)
	if err := pop.Epochs(ctx, driverEpochs, progress); err != nil {
		return runResult{err: err}
	}

	best := pop.Fittest()
	return runResult{sol: unitToSolution(best), unplaced: best.UnplacedPieces()}
}

// better reports whether candidate should replace current as the best
// solution found so far: any fitness-negative (incomplete) result loses
// to any valid one, and among valid results lower price wins, then
// higher fitness.
func better(candidate, current model.Solution) bool {
	if candidate.Fitness < 0 {
		return false
	}
	if current.Fitness < 0 {
		return true
	}
	if candidate.Price != current.Price {
		return candidate.Price < current.Price
	}
	return candidate.Fitness > current.Fitness
}

// runDriver implements the full solution driver of §4.6: it splits stock
// into per-size runs plus an optional mixed run, evolves each concurrently
// bounded by GOMAXPROCS, and picks the best result under the comparison
// rules in better.
func runDriver[H any](ctx context.Context, factory BinFactory[H], stockIn []model.StockPiece, demand []model.InternalPiece, kerf int, seed int64, allowMixedStockSizes bool, progress func(float64)) (model.Solution, error) {
	if len(demand) == 0 {
		return model.Solution{Fitness: 1.0}, nil
	}
	stock := model.MergeStockPieces(stockIn)

	type sizeKey struct{ width, length int }
	var order []sizeKey
	seen := make(map[sizeKey]bool)
	for _, sp := range stock {
		k := sizeKey{sp.Width, sp.Length}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	var runStocks [][]model.StockPiece
	for _, k := range order {
		var filtered []model.StockPiece
		for _, sp := range stock {
			if sp.Width == k.width && sp.Length == k.length {
				filtered = append(filtered, sp)
			}
		}
		runStocks = append(runStocks, filtered)
	}
	mixedIndex := -1
	if allowMixedStockSizes {
		mixedIndex = len(runStocks)
		runStocks = append(runStocks, stock)
	}

	results := make([]runResult, len(runStocks))
	var progressMu sync.Mutex
	guardedProgress := func(v float64) {
		if progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		progress(v)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range runStocks {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = runOneRun(ctx, factory, runStocks[i], demand, kerf, seed, guardedProgress)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return model.Solution{}, err
	}
	for _, r := range results {
		if r.err != nil {
			return model.Solution{}, r.err
		}
	}

	bestIdx := 0
	if mixedIndex >= 0 {
		bestIdx = mixedIndex
	}
	for i, r := range results {
		if i == bestIdx {
			continue
		}
		if better(r.sol, results[bestIdx].sol) {
			bestIdx = i
		}
	}

	best := results[bestIdx]
	if best.sol.Fitness < 0 {
		p := demand[0]
		if len(best.unplaced) > 0 {
			p = best.unplaced[0]
		}
		return model.Solution{}, &model.NoFitForCutPieceError{Piece: model.DemandPiece{
			ExternalID: p.ExternalID,
			Width:      p.Width,
			Length:     p.Length,
			Direction:  p.Direction,
			CanRotate:  p.CanRotate,
			Quantity:   1,
		}}
	}

	sortResultStockDescending(best.sol.StockPieces)
	return best.sol, nil
}
