package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Population is the genetic search driver: a set of candidate
// OptimizerUnit solutions evolved epoch by epoch toward fitness 1.0. It is
// generic over the same heuristic type H as OptimizerUnit and Bin, so the
// identical search loop drives both the guillotine and MaxRects strategies.
type Population[H any] struct {
	units []*OptimizerUnit[H]

	seed           int64
	breedFactor    float64
	survivalFactor float64
	maxSize        int
}

// NewPopulation wraps an initial unit set. maxSize defaults to the number
// of units supplied; breedFactor and survivalFactor take the defaults used
// throughout the search (0.5 and 0.6).
func NewPopulation[H any](units []*OptimizerUnit[H]) *Population[H] {
	return &Population[H]{
		units:          units,
		seed:           1,
		breedFactor:    0.5,
		survivalFactor: 0.6,
		maxSize:        len(units),
	}
}

func (p *Population[H]) SetSeed(seed int64) { p.seed = seed }

func (p *Population[H]) SetBreedFactor(f float64) error {
	if f <= 0 || f > 1 {
		return fmt.Errorf("breed factor must be in (0, 1], got %v", f)
	}
	p.breedFactor = f
	return nil
}

func (p *Population[H]) SetSurvivalFactor(f float64) error {
	if f < 0 || f > 1 {
		return fmt.Errorf("survival factor must be in [0, 1], got %v", f)
	}
	p.survivalFactor = f
	return nil
}

func (p *Population[H]) SetMaxSize(n int) error {
	if n < 1 {
		return fmt.Errorf("max size must be at least 1, got %d", n)
	}
	p.maxSize = n
	return nil
}

// Fittest returns the best unit found so far. Valid only after Epochs has
// run at least one generation; nil if the population is empty.
func (p *Population[H]) Fittest() *OptimizerUnit[H] {
	if len(p.units) == 0 {
		return nil
	}
	return p.units[0]
}

// Epochs runs up to nEpochs generations, stopping early the moment the
// fittest unit reaches fitness 1.0, or if ctx is canceled between
// generations. progress, if non-nil, is called after every generation with
// a value in (0, 1]. On return the population's units are sorted fittest
// first.
func (p *Population[H]) Epochs(ctx context.Context, nEpochs int, progress func(float64)) error {
	rng := rand.New(rand.NewSource(p.seed))
	active := p.units

	for i := 0; i <= nEpochs; i++ {
		if err := ctx.Err(); err != nil {
			p.units = active
			return err
		}

		sort.Slice(active, func(a, b int) bool {
			return active[a].Fitness() < active[b].Fitness()
		})

		if len(active) > 0 && active[len(active)-1].Fitness() >= 1.0 {
			p.units = active
			break
		}
		if i == nEpochs {
			p.units = active
			break
		}

		active = p.epoch(active, rng)
		if progress != nil {
			progress(float64(i+1) / float64(nEpochs))
		}
	}

	reverseUnits(p.units)
	return nil
}

// epoch runs one generation over units, which must already be sorted
// ascending by fitness. The floor(breedFactor*len) fittest units (taken
// from the end) become breeders; the ceil(survivalFactor*breeders) fittest
// among those survive unchanged, and the rest of the next generation is
// filled with children bred from the breeders.
func (p *Population[H]) epoch(units []*OptimizerUnit[H], rng *rand.Rand) []*OptimizerUnit[H] {
	breedUpTo := int(math.Floor(p.breedFactor * float64(len(units))))
	if breedUpTo < 1 {
		breedUpTo = 1
	}
	if breedUpTo > len(units) {
		breedUpTo = len(units)
	}

	breeders := make([]*OptimizerUnit[H], 0, breedUpTo)
	for idx := len(units) - 1; idx >= 0 && len(breeders) < breedUpTo; idx-- {
		breeders = append(breeders, units[idx])
	}

	survivingParents := int(math.Ceil(float64(len(breeders)) * p.survivalFactor))
	if survivingParents > len(breeders) {
		survivingParents = len(breeders)
	}
	survivors := append([]*OptimizerUnit[H]{}, breeders[:survivingParents]...)

	childCount := p.maxSize - survivingParents
	if childCount < 0 {
		childCount = 0
	}
	children := make([]*OptimizerUnit[H], 0, childCount)
	for i := 0; i < childCount; i++ {
		a := breeders[i%len(breeders)]
		b := breeders[rng.Intn(len(breeders))]
		children = append(children, a.BreedWith(rng, b))
	}

	next := make([]*OptimizerUnit[H], 0, len(children)+len(survivors))
	next = append(next, children...)
	next = append(next, survivors...)
	return next
}

func reverseUnits[H any](units []*OptimizerUnit[H]) {
	for i, j := 0, len(units)-1; i < j; i, j = i+1, j-1 {
		units[i], units[j] = units[j], units[i]
	}
}
