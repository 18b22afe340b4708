// Package model holds the data shapes shared by the optimizer core and its
// adapters: demand/stock input, the internal expanded-piece representation,
// and the external result shapes returned from a solved layout.
package model

// PatternDirection constrains how a piece's grain may be oriented relative
// to its bin. Two directions are compatible only when they are equal.
type PatternDirection int

const (
	DirectionNone PatternDirection = iota
	DirectionParallelToWidth
	DirectionParallelToLength
)

func (d PatternDirection) String() string {
	switch d {
	case DirectionParallelToWidth:
		return "ParallelToWidth"
	case DirectionParallelToLength:
		return "ParallelToLength"
	default:
		return "None"
	}
}

// Rotated returns the direction a rectangle would report after a 90 degree
// turn. None has no grain so it is unaffected; the two parallel variants
// swap.
func (d PatternDirection) Rotated() PatternDirection {
	switch d {
	case DirectionParallelToWidth:
		return DirectionParallelToLength
	case DirectionParallelToLength:
		return DirectionParallelToWidth
	default:
		return DirectionNone
	}
}

// DemandPiece is a rectangle required in the output, as supplied by a
// caller. ExternalID lets callers correlate results back to their own
// records; it is never interpreted by the optimizer.
type DemandPiece struct {
	ExternalID string
	Width      int
	Length     int
	Direction  PatternDirection
	CanRotate  bool
	Quantity   int
}

// InternalPiece is one physical unit of a DemandPiece, expanded by
// quantity at driver entry. Equality and hashing are by ID alone: two
// pieces with identical dimensions but different IDs are distinct units of
// demand and must never be collapsed.
type InternalPiece struct {
	ID         int
	ExternalID string
	Width      int
	Length     int
	Direction  PatternDirection
	CanRotate  bool
}

// ExpandDemandPieces expands a demand list into InternalPieces, assigning
// monotonically increasing IDs starting at nextID. It returns the expanded
// pieces and the next unused ID, so callers can expand several demand
// lists into one continuous ID space.
func ExpandDemandPieces(pieces []DemandPiece, nextID int) ([]InternalPiece, int) {
	var out []InternalPiece
	for _, p := range pieces {
		for i := 0; i < p.Quantity; i++ {
			out = append(out, InternalPiece{
				ID:         nextID,
				ExternalID: p.ExternalID,
				Width:      p.Width,
				Length:     p.Length,
				Direction:  p.Direction,
				CanRotate:  p.CanRotate,
			})
			nextID++
		}
	}
	return out, nextID
}

// StockPiece is a rectangle of raw material available to cut from. A nil
// Quantity means unlimited availability.
type StockPiece struct {
	Width     int
	Length    int
	Direction PatternDirection
	Price     int
	Quantity  *int
}

// Unlimited reports whether this stock entry has no quantity cap.
func (s StockPiece) Unlimited() bool {
	return s.Quantity == nil
}

// equivalent reports whether two stock entries describe the same
// purchasable item: same dimensions, grain, and price. Equivalent entries
// are coalesced by AddStockPiece.
func (s StockPiece) equivalent(o StockPiece) bool {
	return s.Width == o.Width && s.Length == o.Length &&
		s.Direction == o.Direction && s.Price == o.Price
}

// MergeStockPieces coalesces equivalent entries (matching width, length,
// direction, and price) by summing their quantities; if either entry in a
// coalesced pair is unlimited, the result is unlimited. Order of first
// appearance is preserved.
func MergeStockPieces(pieces []StockPiece) []StockPiece {
	var merged []StockPiece
	for _, p := range pieces {
		found := false
		for i := range merged {
			if merged[i].equivalent(p) {
				merged[i].Quantity = mergeQuantity(merged[i].Quantity, p.Quantity)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, p)
		}
	}
	return merged
}

func mergeQuantity(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	sum := *a + *b
	return &sum
}

// Rect is an axis-aligned rectangle in bin-local integer coordinates,
// closed on its low edges and open on its high edges.
type Rect struct {
	X      int
	Y      int
	Width  int
	Length int
}

// Area returns width * length.
func (r Rect) Area() int {
	return r.Width * r.Length
}

// Contains reports whether o lies entirely within r. Shared edges count as
// inside, so a rectangle contains an identical copy of itself.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Length <= r.Y+r.Length
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Length && r.Y+r.Length > o.Y
}

// PlacedPiece is an InternalPiece together with the rectangle it occupies
// within a bin, and whether it was rotated to get there.
type PlacedPiece struct {
	Piece     InternalPiece
	Rect      Rect
	IsRotated bool
	Direction PatternDirection
}

// ResultPlacedPiece is the external, serializable form of a placement.
type ResultPlacedPiece struct {
	ExternalID string           `json:"external_id,omitempty"`
	X          int              `json:"x"`
	Y          int              `json:"y"`
	Width      int              `json:"width"`
	Length     int              `json:"length"`
	Direction  PatternDirection `json:"direction"`
	IsRotated  bool             `json:"is_rotated"`
}

// ResultStockPiece is one consumed stock piece in a Solution: its
// dimensions, the pieces placed on it, and the waste rectangles left over.
type ResultStockPiece struct {
	Width       int                 `json:"width"`
	Length      int                 `json:"length"`
	Direction   PatternDirection    `json:"direction"`
	Price       int                 `json:"price"`
	Pieces      []ResultPlacedPiece `json:"pieces"`
	WastePieces []Rect              `json:"waste_pieces"`
}

// Solution is the outcome of one optimizer run: the stock pieces consumed,
// the layout's fitness, and the total price paid for stock.
type Solution struct {
	Fitness     float64             `json:"fitness"`
	StockPieces []ResultStockPiece  `json:"stock_pieces"`
	Price       int                 `json:"price"`
}
