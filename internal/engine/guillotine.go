package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/nestcut/internal/model"
)

// ChoiceRule picks which free rectangle a guillotine bin places a piece
// into when no exact fit is available. The Worst-* variants and
// SmallestY exist for completeness with the upstream algorithm but never
// appear in the canonical 36-heuristic enumeration or in random draws;
// they negate or replace the scoring function entirely.
type ChoiceRule int

const (
	ChoiceBestAreaFit ChoiceRule = iota
	ChoiceBestShortSideFit
	ChoiceBestLongSideFit
	ChoiceWorstAreaFit
	ChoiceWorstShortSideFit
	ChoiceWorstLongSideFit
	ChoiceSmallestY
)

// SplitRule decides whether the leftover L-shape after a placement is
// divided with a horizontal or vertical cut.
type SplitRule int

const (
	SplitShorterLeftoverAxis SplitRule = iota
	SplitLongerLeftoverAxis
	SplitMinimizeArea
	SplitMaximizeArea
	SplitShorterAxis
	SplitLongerAxis
)

// RotatePreference breaks ties when both an upright and a rotated
// placement are possible and neither is exact.
type RotatePreference int

const (
	PreferUpright RotatePreference = iota
	PreferRotated
)

// GuillotineHeuristic is the (choice, split, rotate) tuple that
// parameterizes one guillotine insertion.
type GuillotineHeuristic struct {
	Choice ChoiceRule
	Split  SplitRule
	Rotate RotatePreference
}

// GuillotineHeuristics returns the full Cartesian product of the three
// canonical choice rules, all six split rules, and both rotate
// preferences: 36 tuples, in a fixed bit-exact order.
func GuillotineHeuristics() []GuillotineHeuristic {
	choices := []ChoiceRule{ChoiceBestAreaFit, ChoiceBestShortSideFit, ChoiceBestLongSideFit}
	splits := []SplitRule{
		SplitShorterLeftoverAxis, SplitLongerLeftoverAxis,
		SplitMinimizeArea, SplitMaximizeArea,
		SplitShorterAxis, SplitLongerAxis,
	}
	rotates := []RotatePreference{PreferUpright, PreferRotated}

	var out []GuillotineHeuristic
	for _, c := range choices {
		for _, s := range splits {
			for _, r := range rotates {
				out = append(out, GuillotineHeuristic{Choice: c, Split: s, Rotate: r})
			}
		}
	}
	return out
}

// RandomGuillotineHeuristic draws a heuristic tuple uniformly, excluding
// the Worst-* choice rules and SmallestY: random search only ever
// explores the same three choice rules used in the canonical
// enumeration, but any split rule and rotate preference.
func RandomGuillotineHeuristic(rng *rand.Rand) GuillotineHeuristic {
	choices := []ChoiceRule{ChoiceBestAreaFit, ChoiceBestShortSideFit, ChoiceBestLongSideFit}
	splits := []SplitRule{
		SplitShorterLeftoverAxis, SplitLongerLeftoverAxis,
		SplitMinimizeArea, SplitMaximizeArea,
		SplitShorterAxis, SplitLongerAxis,
	}
	return GuillotineHeuristic{
		Choice: choices[rng.Intn(len(choices))],
		Split:  splits[rng.Intn(len(splits))],
		Rotate: RotatePreference(rng.Intn(2)),
	}
}

// GuillotineBinFactory is the BinFactory descriptor wiring GuillotineBin
// into the generic Population/OptimizerUnit layer.
var GuillotineBinFactory = BinFactory[GuillotineHeuristic]{
	New: func(width, length, kerfWidth int, direction model.PatternDirection, price int) Bin[GuillotineHeuristic] {
		return NewGuillotineBin(width, length, kerfWidth, direction, price)
	},
	Heuristics:      GuillotineHeuristics(),
	RandomHeuristic: RandomGuillotineHeuristic,
}

// GuillotineBin packs pieces using edge-to-edge (guillotine) cuts: its
// free space is always an exact tiling of non-overlapping rectangles.
type GuillotineBin struct {
	width     int
	length    int
	kerfWidth int
	direction model.PatternDirection
	price     int

	placed    []model.PlacedPiece
	freeRects []model.Rect
}

// NewGuillotineBin creates an empty bin spanning the whole stock piece.
func NewGuillotineBin(width, length, kerfWidth int, direction model.PatternDirection, price int) *GuillotineBin {
	return &GuillotineBin{
		width:     width,
		length:    length,
		kerfWidth: kerfWidth,
		direction: direction,
		price:     price,
		freeRects: []model.Rect{{X: 0, Y: 0, Width: width, Length: length}},
	}
}

func (b *GuillotineBin) Price() int { return b.price }

func (b *GuillotineBin) PlacedPieces() []model.PlacedPiece {
	return b.placed
}

func (b *GuillotineBin) MatchesStockPiece(sp model.StockPiece) bool {
	return b.width == sp.Width && b.length == sp.Length &&
		b.direction == sp.Direction && b.price == sp.Price
}

// InsertWithHeuristic attempts to place piece according to h's choice,
// split, and rotate rules.
func (b *GuillotineBin) InsertWithHeuristic(piece model.InternalPiece, h GuillotineHeuristic) bool {
	preferRotated := h.Rotate == PreferRotated

	bestIndex := -1
	bestFit := FitNone
	bestScore := 0.0

	for i, free := range b.freeRects {
		fit := classifyFit(free, b.direction, piece, preferRotated)
		if fit.IsNone() {
			continue
		}
		if fit.IsExact() {
			bestIndex = i
			bestFit = fit
			break
		}
		score := choiceScore(h.Choice, free, piece, fit)
		if bestIndex == -1 || score < bestScore {
			bestIndex = i
			bestFit = fit
			bestScore = score
		}
	}

	if bestIndex == -1 {
		return false
	}

	free := b.freeRects[bestIndex]
	rotated := bestFit.IsRotated()
	placedWidth, placedLength := piece.Width, piece.Length
	if rotated {
		placedWidth, placedLength = piece.Length, piece.Width
	}
	placedRect := model.Rect{X: free.X, Y: free.Y, Width: placedWidth, Length: placedLength}

	b.freeRects = append(b.freeRects[:bestIndex], b.freeRects[bestIndex+1:]...)
	b.splitFreeRect(free, placedRect, h.Split)
	b.mergeFreeRects()

	b.placed = append(b.placed, model.PlacedPiece{
		Piece:     piece,
		Rect:      placedRect,
		IsRotated: rotated,
		Direction: placedDirection(piece, rotated),
	})
	return true
}

func (b *GuillotineBin) InsertRandomHeuristic(piece model.InternalPiece, rng *rand.Rand) bool {
	return b.InsertWithHeuristic(piece, RandomGuillotineHeuristic(rng))
}

// choiceScore scores a non-exact fit under rule c; lower is better.
// Worst-* variants negate the corresponding Best score so that the
// minimizing search above picks the worst fit instead.
func choiceScore(c ChoiceRule, free model.Rect, piece model.InternalPiece, fit Fit) float64 {
	w, l := piece.Width, piece.Length
	if fit.IsRotated() {
		w, l = piece.Length, piece.Width
	}
	leftoverW := absInt(free.Width - w)
	leftoverL := absInt(free.Length - l)
	shortSide := float64(minInt(leftoverW, leftoverL))
	longSide := float64(maxInt(leftoverW, leftoverL))
	areaFit := float64(free.Area() - w*l)

	switch c {
	case ChoiceBestAreaFit:
		return areaFit
	case ChoiceBestShortSideFit:
		return shortSide
	case ChoiceBestLongSideFit:
		return longSide
	case ChoiceWorstAreaFit:
		return -areaFit
	case ChoiceWorstShortSideFit:
		return -shortSide
	case ChoiceWorstLongSideFit:
		return -longSide
	case ChoiceSmallestY:
		return float64(free.Y)
	default:
		return areaFit
	}
}

// splitFreeRect carves the leftover L-shape of free, after placed has
// been cut from its top-left corner, into up to two new free rectangles,
// consuming kerfWidth of material along the cut axis. A leftover whose
// span does not exceed the kerf is degenerate and discarded.
func (b *GuillotineBin) splitFreeRect(free, placed model.Rect, split SplitRule) {
	leftoverW := free.Width - placed.Width
	leftoverL := free.Length - placed.Length

	var horizontal bool
	switch split {
	case SplitShorterLeftoverAxis:
		horizontal = leftoverW <= leftoverL
	case SplitLongerLeftoverAxis:
		horizontal = leftoverW > leftoverL
	case SplitMinimizeArea:
		horizontal = placed.Width*leftoverL > leftoverW*placed.Length
	case SplitMaximizeArea:
		horizontal = placed.Width*leftoverL <= leftoverW*placed.Length
	case SplitShorterAxis:
		horizontal = free.Width <= free.Length
	case SplitLongerAxis:
		horizontal = free.Width > free.Length
	default:
		horizontal = true
	}

	bottom := model.Rect{X: free.X, Y: free.Y + placed.Length + b.kerfWidth, Length: leftoverL - b.kerfWidth}
	right := model.Rect{X: free.X + placed.Width + b.kerfWidth, Y: free.Y, Width: leftoverW - b.kerfWidth}
	if horizontal {
		bottom.Width = free.Width
		right.Length = placed.Length
	} else {
		bottom.Width = placed.Width
		right.Length = free.Length
	}

	if bottom.Width > 0 && bottom.Length > 0 {
		b.freeRects = append(b.freeRects, bottom)
	}
	if right.Width > 0 && right.Length > 0 {
		b.freeRects = append(b.freeRects, right)
	}
}

// mergeFreeRects coalesces adjacent free rectangles whose shared edge is
// exactly aligned allowing for kerf, repeating until no further merge is
// possible.
func (b *GuillotineBin) mergeFreeRects() {
	for {
		merged := false
		for i := 0; i < len(b.freeRects) && !merged; i++ {
			for j := i + 1; j < len(b.freeRects); j++ {
				r1, r2 := b.freeRects[i], b.freeRects[j]
				if r1.X == r2.X && r1.Width == r2.Width {
					if r1.Y+r1.Length+b.kerfWidth == r2.Y {
						b.freeRects[i].Length = r1.Length + b.kerfWidth + r2.Length
						b.freeRects = append(b.freeRects[:j], b.freeRects[j+1:]...)
						merged = true
						break
					}
					if r2.Y+r2.Length+b.kerfWidth == r1.Y {
						b.freeRects[i].Y = r2.Y
						b.freeRects[i].Length = r2.Length + b.kerfWidth + r1.Length
						b.freeRects = append(b.freeRects[:j], b.freeRects[j+1:]...)
						merged = true
						break
					}
				} else if r1.Y == r2.Y && r1.Length == r2.Length {
					if r1.X+r1.Width+b.kerfWidth == r2.X {
						b.freeRects[i].Width = r1.Width + b.kerfWidth + r2.Width
						b.freeRects = append(b.freeRects[:j], b.freeRects[j+1:]...)
						merged = true
						break
					}
					if r2.X+r2.Width+b.kerfWidth == r1.X {
						b.freeRects[i].X = r2.X
						b.freeRects[i].Width = r2.Width + b.kerfWidth + r1.Width
						b.freeRects = append(b.freeRects[:j], b.freeRects[j+1:]...)
						merged = true
						break
					}
				}
			}
		}
		if !merged {
			return
		}
	}
}

func (b *GuillotineBin) RemovePieces(ids map[int]bool) int {
	removed := 0
	for i := len(b.placed) - 1; i >= 0; i-- {
		if ids[b.placed[i].Piece.ID] {
			b.freeRects = append(b.freeRects, b.placed[i].Rect)
			b.placed = append(b.placed[:i], b.placed[i+1:]...)
			removed++
		}
	}
	if removed > 0 {
		b.mergeFreeRects()
	}
	return removed
}

// Fitness is (used / (used + free)) ^ (2 + 0.01*|free rects|). The
// exponent mildly penalizes fragmentation; kerf loss is excluded from
// both terms since it belongs to neither a placed piece nor free space.
func (b *GuillotineBin) Fitness() float64 {
	used := 0.0
	for _, p := range b.placed {
		used += float64(p.Rect.Area())
	}
	free := 0.0
	for _, r := range b.freeRects {
		free += float64(r.Area())
	}
	total := used + free
	if total == 0 {
		return 0
	}
	base := used / total
	return math.Pow(base, 2.0+0.01*float64(len(b.freeRects)))
}

// Clone returns an independent copy of the bin, so a containing Unit can
// be cloned during crossover without aliasing free rectangles.
func (b *GuillotineBin) Clone() Bin[GuillotineHeuristic] {
	clone := &GuillotineBin{
		width:     b.width,
		length:    b.length,
		kerfWidth: b.kerfWidth,
		direction: b.direction,
		price:     b.price,
		placed:    append([]model.PlacedPiece(nil), b.placed...),
		freeRects: append([]model.Rect(nil), b.freeRects...),
	}
	return clone
}

func (b *GuillotineBin) ToResult() model.ResultStockPiece {
	res := model.ResultStockPiece{
		Width:       b.width,
		Length:      b.length,
		Direction:   b.direction,
		Price:       b.price,
		WastePieces: append([]model.Rect(nil), b.freeRects...),
	}
	for _, p := range b.placed {
		res.Pieces = append(res.Pieces, model.ResultPlacedPiece{
			ExternalID: p.Piece.ExternalID,
			X:          p.Rect.X,
			Y:          p.Rect.Y,
			Width:      p.Rect.Width,
			Length:     p.Rect.Length,
			Direction:  p.Direction,
			IsRotated:  p.IsRotated,
		})
	}
	return res
}
