package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/nestcut/internal/model"
)

// FreeRectChoice picks which of the (possibly overlapping) maximal free
// rectangles a MaxRects bin places a piece into.
type FreeRectChoice int

const (
	ChoiceMaxRectsBestShortSideFit FreeRectChoice = iota
	ChoiceMaxRectsBestLongSideFit
	ChoiceMaxRectsBestAreaFit
	ChoiceBottomLeftRule
	ChoiceContactPointRule
)

// MaxRectsHeuristic is the (choice, rotate) tuple that parameterizes one
// MaxRects insertion.
type MaxRectsHeuristic struct {
	Choice FreeRectChoice
	Rotate RotatePreference
}

// MaxRectsHeuristics returns the full Cartesian product of the five
// choice rules and both rotate preferences: 10 tuples.
func MaxRectsHeuristics() []MaxRectsHeuristic {
	choices := []FreeRectChoice{
		ChoiceMaxRectsBestShortSideFit, ChoiceMaxRectsBestLongSideFit,
		ChoiceMaxRectsBestAreaFit, ChoiceBottomLeftRule, ChoiceContactPointRule,
	}
	rotates := []RotatePreference{PreferUpright, PreferRotated}

	var out []MaxRectsHeuristic
	for _, c := range choices {
		for _, r := range rotates {
			out = append(out, MaxRectsHeuristic{Choice: c, Rotate: r})
		}
	}
	return out
}

// RandomMaxRectsHeuristic draws a heuristic tuple uniformly; MaxRects has
// no Worst-* variants, so nothing is excluded from random draws.
func RandomMaxRectsHeuristic(rng *rand.Rand) MaxRectsHeuristic {
	all := MaxRectsHeuristics()
	return all[rng.Intn(len(all))]
}

// MaxRectsBinFactory is the BinFactory descriptor wiring MaxRectsBin into
// the generic Population/OptimizerUnit layer.
var MaxRectsBinFactory = BinFactory[MaxRectsHeuristic]{
	New: func(width, length, kerfWidth int, direction model.PatternDirection, price int) Bin[MaxRectsHeuristic] {
		return NewMaxRectsBin(width, length, kerfWidth, direction, price)
	},
	Heuristics:      MaxRectsHeuristics(),
	RandomHeuristic: RandomMaxRectsHeuristic,
}

// MaxRectsBin packs pieces using the Maximal Rectangles algorithm: its
// free space is a list of maximal, possibly overlapping rectangles,
// letting it reclaim space guillotine cuts would waste.
type MaxRectsBin struct {
	width     int
	length    int
	kerfWidth int
	direction model.PatternDirection
	price     int

	placed    []model.PlacedPiece
	freeRects []model.Rect
}

func NewMaxRectsBin(width, length, kerfWidth int, direction model.PatternDirection, price int) *MaxRectsBin {
	return &MaxRectsBin{
		width:     width,
		length:    length,
		kerfWidth: kerfWidth,
		direction: direction,
		price:     price,
		freeRects: []model.Rect{{X: 0, Y: 0, Width: width, Length: length}},
	}
}

func (b *MaxRectsBin) Price() int                    { return b.price }
func (b *MaxRectsBin) PlacedPieces() []model.PlacedPiece { return b.placed }

func (b *MaxRectsBin) MatchesStockPiece(sp model.StockPiece) bool {
	return b.width == sp.Width && b.length == sp.Length &&
		b.direction == sp.Direction && b.price == sp.Price
}

func (b *MaxRectsBin) InsertWithHeuristic(piece model.InternalPiece, h MaxRectsHeuristic) bool {
	preferRotated := h.Rotate == PreferRotated
	rect, rotated, ok := b.findPlacement(piece, h.Choice, preferRotated)
	if !ok {
		return false
	}

	for i := len(b.freeRects) - 1; i >= 0; i-- {
		b.splitFreeRect(i, rect)
	}
	b.pruneFreeRects()

	b.placed = append(b.placed, model.PlacedPiece{
		Piece:     piece,
		Rect:      rect,
		IsRotated: rotated,
		Direction: placedDirection(piece, rotated),
	})
	return true
}

func (b *MaxRectsBin) InsertRandomHeuristic(piece model.InternalPiece, rng *rand.Rand) bool {
	return b.InsertWithHeuristic(piece, RandomMaxRectsHeuristic(rng))
}

func (b *MaxRectsBin) findPlacement(piece model.InternalPiece, choice FreeRectChoice, preferRotated bool) (model.Rect, bool, bool) {
	switch choice {
	case ChoiceBottomLeftRule:
		return b.findBottomLeft(piece, preferRotated)
	case ChoiceMaxRectsBestShortSideFit:
		return b.findBestSideFit(piece, preferRotated, true)
	case ChoiceMaxRectsBestLongSideFit:
		return b.findBestSideFit(piece, preferRotated, false)
	case ChoiceMaxRectsBestAreaFit:
		return b.findBestAreaFit(piece, preferRotated)
	case ChoiceContactPointRule:
		return b.findContactPoint(piece, preferRotated)
	default:
		return model.Rect{}, false, false
	}
}

func orientedDims(piece model.InternalPiece, rotated bool) (int, int) {
	if rotated {
		return piece.Length, piece.Width
	}
	return piece.Width, piece.Length
}

func (b *MaxRectsBin) findBottomLeft(piece model.InternalPiece, preferRotated bool) (model.Rect, bool, bool) {
	var best model.Rect
	bestY, bestX := math.MaxInt, math.MaxInt
	bestFit := FitNone

	for _, free := range b.freeRects {
		fit := classifyFit(free, b.direction, piece, preferRotated)
		if fit.IsNone() {
			continue
		}
		rotated := fit.IsRotated()
		w, l := orientedDims(piece, rotated)
		topY := free.Y + l
		if topY < bestY || (topY == bestY && free.X < bestX) {
			best = model.Rect{X: free.X, Y: free.Y, Width: w, Length: l}
			bestY, bestX = topY, free.X
			bestFit = fit
		}
	}
	return best, bestFit.IsRotated(), !bestFit.IsNone()
}

func (b *MaxRectsBin) findBestSideFit(piece model.InternalPiece, preferRotated, shortFirst bool) (model.Rect, bool, bool) {
	var best model.Rect
	bestShort, bestLong := math.MaxInt, math.MaxInt
	bestFit := FitNone

	for _, free := range b.freeRects {
		fit := classifyFit(free, b.direction, piece, preferRotated)
		if fit.IsNone() {
			continue
		}
		rotated := fit.IsRotated()
		w, l := orientedDims(piece, rotated)
		leftoverW := absInt(free.Width - w)
		leftoverL := absInt(free.Length - l)
		short := minInt(leftoverW, leftoverL)
		long := maxInt(leftoverW, leftoverL)

		better := false
		if shortFirst {
			better = short < bestShort || (short == bestShort && long < bestLong)
		} else {
			better = long < bestLong || (long == bestLong && short < bestShort)
		}
		if better {
			best = model.Rect{X: free.X, Y: free.Y, Width: w, Length: l}
			bestShort, bestLong = short, long
			bestFit = fit
		}
	}
	return best, bestFit.IsRotated(), !bestFit.IsNone()
}

func (b *MaxRectsBin) findBestAreaFit(piece model.InternalPiece, preferRotated bool) (model.Rect, bool, bool) {
	var best model.Rect
	bestArea, bestShort := math.MaxInt, math.MaxInt
	bestFit := FitNone

	for _, free := range b.freeRects {
		fit := classifyFit(free, b.direction, piece, preferRotated)
		if fit.IsNone() {
			continue
		}
		rotated := fit.IsRotated()
		w, l := orientedDims(piece, rotated)
		freeArea := free.Area()
		pieceArea := w * l
		if pieceArea > freeArea {
			continue
		}
		areaFit := freeArea - pieceArea
		leftoverW := absInt(free.Width - w)
		leftoverL := absInt(free.Length - l)
		short := minInt(leftoverW, leftoverL)

		if areaFit < bestArea || (areaFit == bestArea && short < bestShort) {
			best = model.Rect{X: free.X, Y: free.Y, Width: w, Length: l}
			bestArea, bestShort = areaFit, short
			bestFit = fit
		}
	}
	return best, bestFit.IsRotated(), !bestFit.IsNone()
}

func (b *MaxRectsBin) findContactPoint(piece model.InternalPiece, preferRotated bool) (model.Rect, bool, bool) {
	var best model.Rect
	bestScore := -1
	bestFit := FitNone

	for _, free := range b.freeRects {
		fit := classifyFit(free, b.direction, piece, preferRotated)
		if fit.IsNone() {
			continue
		}
		rotated := fit.IsRotated()
		w, l := orientedDims(piece, rotated)
		score := b.contactPointScore(free.X, free.Y, w, l)
		if score > bestScore || bestFit.IsNone() {
			best = model.Rect{X: free.X, Y: free.Y, Width: w, Length: l}
			bestScore = score
			bestFit = fit
		}
	}
	return best, bestFit.IsRotated(), !bestFit.IsNone()
}

func (b *MaxRectsBin) contactPointScore(x, y, width, length int) int {
	score := 0
	if x == 0 || x+width == b.width {
		score += length
	}
	if y == 0 || y+length == b.length {
		score += width
	}
	for _, p := range b.placed {
		r := p.Rect
		if r.X == x+width || r.X+r.Width == x {
			score += commonIntervalLength(r.Y, r.Y+r.Length, y, y+length)
		}
		if r.Y == y+length || r.Y+r.Length == y {
			score += commonIntervalLength(r.X, r.X+r.Width, x, x+width)
		}
	}
	return score
}

// splitFreeRect subtracts rect — expanded by kerfWidth on all four sides
// and clipped to the bin — from the free rectangle at freeIndex, pushing
// up to four residual strips (above, below, left, right) and removing
// the original via swap-delete.
func (b *MaxRectsBin) splitFreeRect(freeIndex int, rect model.Rect) {
	free := b.freeRects[freeIndex]

	x := rect.X
	if x >= b.kerfWidth {
		x -= b.kerfWidth
	} else {
		x = 0
	}
	y := rect.Y
	if y >= b.kerfWidth {
		y -= b.kerfWidth
	} else {
		y = 0
	}
	width := rect.Width + rect.X - x + b.kerfWidth
	if x+width > b.width {
		width -= x + width - b.width
	}
	length := rect.Length + rect.Y - y + b.kerfWidth
	if y+length > b.length {
		length -= y + length - b.length
	}
	expanded := model.Rect{X: x, Y: y, Width: width, Length: length}

	if !free.Overlaps(expanded) {
		return
	}

	if expanded.X < free.X+free.Width && expanded.X+expanded.Width > free.X {
		if expanded.Y > free.Y && expanded.Y < free.Y+free.Length {
			above := free
			above.Length = expanded.Y - above.Y
			b.freeRects = append(b.freeRects, above)
		}
		if expanded.Y+expanded.Length < free.Y+free.Length {
			below := free
			below.Y = expanded.Y + expanded.Length
			below.Length = free.Y + free.Length - expanded.Y - expanded.Length
			b.freeRects = append(b.freeRects, below)
		}
	}

	if expanded.Y < free.Y+free.Length && expanded.Y+expanded.Length > free.Y {
		if expanded.X > free.X && expanded.X < free.X+free.Width {
			left := free
			left.Width = expanded.X - left.X
			b.freeRects = append(b.freeRects, left)
		}
		if expanded.X+expanded.Width < free.X+free.Width {
			right := free
			right.X = expanded.X + expanded.Width
			right.Width = free.X + free.Width - expanded.X - expanded.Width
			b.freeRects = append(b.freeRects, right)
		}
	}

	b.freeRects[freeIndex] = b.freeRects[len(b.freeRects)-1]
	b.freeRects = b.freeRects[:len(b.freeRects)-1]
}

// pruneFreeRects removes any free rectangle contained in another; of two
// identical rectangles, one is removed.
func (b *MaxRectsBin) pruneFreeRects() {
	for i := len(b.freeRects) - 1; i >= 0; i-- {
		for j := len(b.freeRects) - 1; j > i; j-- {
			if b.freeRects[j].Contains(b.freeRects[i]) {
				b.freeRects[i] = b.freeRects[len(b.freeRects)-1]
				b.freeRects = b.freeRects[:len(b.freeRects)-1]
				break
			}
			if i < len(b.freeRects) && b.freeRects[i].Contains(b.freeRects[j]) {
				b.freeRects[j] = b.freeRects[len(b.freeRects)-1]
				b.freeRects = b.freeRects[:len(b.freeRects)-1]
			}
		}
	}
}

// makeFreeRectsDisjoint repeatedly splits the larger of any two
// intersecting free rectangles using the smaller as the subtractor. It is
// only run when emitting the waste-piece list, since the free list is
// otherwise allowed to overlap during the search.
func (b *MaxRectsBin) makeFreeRectsDisjoint() {
	length := len(b.freeRects)
outer:
	for i := length - 1; i >= 0; i-- {
		for j := length - 1; j > i; j-- {
			if j >= len(b.freeRects) {
				break
			}
			if i >= len(b.freeRects) {
				break outer
			}
			if b.freeRects[i].Area() > b.freeRects[j].Area() {
				r := b.freeRects[j]
				b.splitFreeRect(i, r)
			} else {
				r := b.freeRects[i]
				b.splitFreeRect(j, r)
			}
		}
	}
}

func (b *MaxRectsBin) RemovePieces(ids map[int]bool) int {
	removed := 0
	for i := len(b.placed) - 1; i >= 0; i-- {
		if ids[b.placed[i].Piece.ID] {
			b.freeRects = append(b.freeRects, b.placed[i].Rect)
			b.placed = append(b.placed[:i], b.placed[i+1:]...)
			removed++
		}
	}
	return removed
}

// Fitness mirrors GuillotineBin.Fitness's shape but computes used area
// kerf-inclusively, so kerf loss around a placed piece doesn't penalize
// the score the way it would if charged only to free space.
func (b *MaxRectsBin) Fitness() float64 {
	halfKerf := float64(b.kerfWidth) / 2.0
	used := 0.0
	for _, p := range b.placed {
		r := p.Rect
		width := float64(r.Width) + math.Min(float64(r.X), halfKerf) +
			math.Min(float64(b.width-r.Width-r.X), halfKerf)
		length := float64(r.Length) + math.Min(float64(r.Y), halfKerf) +
			math.Min(float64(b.length-r.Length-r.Y), halfKerf)
		used += width * length
	}
	total := float64(b.width * b.length)
	if total == 0 {
		return 0
	}
	base := used / total
	return math.Pow(base, 2.0+0.01*float64(len(b.freeRects)))
}

// Clone returns an independent copy of the bin.
func (b *MaxRectsBin) Clone() Bin[MaxRectsHeuristic] {
	clone := &MaxRectsBin{
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

func (b *MaxRectsBin) ToResult() model.ResultStockPiece {
	b.makeFreeRectsDisjoint()
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
