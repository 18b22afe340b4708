package engine

import (
	"context"

	"github.com/piwi3910/nestcut/internal/model"
)

// Builder accumulates demand and stock for one optimization request and
// exposes the two packing strategies as terminal operations. It is the
// library-style entry point external callers construct and drive.
type Builder struct {
	stock     []model.StockPiece
	demand    []model.InternalPiece
	nextPieceID int

	cutWidth             int
	randomSeed           int64
	allowMixedStockSizes bool
}

// NewBuilder returns a Builder with the documented defaults: no kerf,
// seed 1, and mixed stock sizes allowed.
func NewBuilder() *Builder {
	return &Builder{
		randomSeed:           1,
		allowMixedStockSizes: true,
	}
}

// AddStockPiece adds a purchasable stock entry, merging it into any
// existing equivalent entry (same width, length, direction, price) by
// summing quantities, or promoting to unlimited if either is unlimited.
func (b *Builder) AddStockPiece(sp model.StockPiece) {
	b.stock = model.MergeStockPieces(append(b.stock, sp))
}

// AddCutPiece expands dp by its quantity into InternalPieces with
// monotonically increasing ids, continuing the id sequence across calls.
func (b *Builder) AddCutPiece(dp model.DemandPiece) {
	expanded, next := model.ExpandDemandPieces([]model.DemandPiece{dp}, b.nextPieceID)
	b.demand = append(b.demand, expanded...)
	b.nextPieceID = next
}

// SetCutWidth sets the blade kerf, in the same units as piece dimensions.
func (b *Builder) SetCutWidth(w int) { b.cutWidth = w }

// SetRandomSeed fixes the driver's seed, making the whole search
// deterministic for identical inputs.
func (b *Builder) SetRandomSeed(seed int64) { b.randomSeed = seed }

// SetAllowMixedStockSizes toggles whether a run over the full, mixed stock
// catalogue is attempted alongside the per-size runs.
func (b *Builder) SetAllowMixedStockSizes(v bool) { b.allowMixedStockSizes = v }

// OptimizeGuillotine runs the solution driver using straight, edge-to-edge
// guillotine cuts.
func (b *Builder) OptimizeGuillotine(ctx context.Context, progress func(float64)) (model.Solution, error) {
	return runDriver(ctx, GuillotineBinFactory, b.stock, b.demand, b.cutWidth, b.randomSeed, b.allowMixedStockSizes, progress)
}

// OptimizeNested runs the solution driver using free (MaxRects) placement,
// which is not constrained to edge-to-edge cuts.
func (b *Builder) OptimizeNested(ctx context.Context, progress func(float64)) (model.Solution, error) {
	return runDriver(ctx, MaxRectsBinFactory, b.stock, b.demand, b.cutWidth, b.randomSeed, b.allowMixedStockSizes, progress)
}
