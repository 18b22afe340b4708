package engine

import "github.com/piwi3910/nestcut/internal/model"

// Fit classifies how (or whether) a demand piece can occupy a free
// rectangle under a given grain direction.
type Fit int

const (
	FitNone Fit = iota
	FitUpright
	FitRotated
	FitUprightExact
	FitRotatedExact
)

func (f Fit) IsNone() bool {
	return f == FitNone
}

func (f Fit) IsUpright() bool {
	return f == FitUpright || f == FitUprightExact
}

func (f Fit) IsRotated() bool {
	return f == FitRotated || f == FitRotatedExact
}

func (f Fit) IsExact() bool {
	return f == FitUprightExact || f == FitRotatedExact
}

// classifyFit determines how piece p fits into free rectangle free, which
// belongs to a bin with grain direction binDirection. preferRotated only
// matters when both an upright and a rotated placement are possible and
// neither is exact; the exact case always wins outright regardless of
// preference.
func classifyFit(free model.Rect, binDirection model.PatternDirection, p model.InternalPiece, preferRotated bool) Fit {
	upright := FitNone
	if binDirection == p.Direction {
		if p.Width == free.Width && p.Length == free.Length {
			upright = FitUprightExact
		} else if p.Width <= free.Width && p.Length <= free.Length {
			upright = FitUpright
		}
	}

	rotated := FitNone
	if p.CanRotate && binDirection == p.Direction.Rotated() {
		if p.Length == free.Width && p.Width == free.Length {
			rotated = FitRotatedExact
		} else if p.Length <= free.Width && p.Width <= free.Length {
			rotated = FitRotated
		}
	}

	if upright == FitUprightExact {
		return upright
	}
	if rotated == FitRotatedExact {
		return rotated
	}
	if upright != FitNone && rotated != FitNone {
		if preferRotated {
			return rotated
		}
		return upright
	}
	if upright != FitNone {
		return upright
	}
	return rotated
}

// placedDirection returns the grain direction a piece reports once placed,
// accounting for whether it was rotated to fit.
func placedDirection(p model.InternalPiece, rotated bool) model.PatternDirection {
	if rotated {
		return p.Direction.Rotated()
	}
	return p.Direction
}

// commonIntervalLength returns 0 if [start1,end1) and [start2,end2) are
// disjoint, or the length of their overlap otherwise.
func commonIntervalLength(start1, end1, start2, end2 int) int {
	if end1 < start2 || end2 < start1 {
		return 0
	}
	lo := start1
	if start2 > lo {
		lo = start2
	}
	hi := end1
	if end2 < hi {
		hi = end2
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
