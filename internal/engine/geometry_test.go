package engine

import (
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestClassifyFit_ExactUprightWins(t *testing.T) {
	free := model.Rect{Width: 500, Length: 300}
	p := model.InternalPiece{Width: 500, Length: 300, Direction: model.DirectionNone, CanRotate: true}

	got := classifyFit(free, model.DirectionNone, p, false)
	if got != FitUprightExact {
		t.Fatalf("classifyFit() = %v, want FitUprightExact", got)
	}
	if !got.IsExact() || !got.IsUpright() {
		t.Errorf("FitUprightExact should report IsExact and IsUpright")
	}
}

func TestClassifyFit_RotateToFit(t *testing.T) {
	free := model.Rect{Width: 300, Length: 500}
	p := model.InternalPiece{Width: 500, Length: 300, Direction: model.DirectionNone, CanRotate: true}

	got := classifyFit(free, model.DirectionNone, p, false)
	if !got.IsRotated() {
		t.Fatalf("classifyFit() = %v, want a rotated fit", got)
	}
}

func TestClassifyFit_RotateBlockedByDirection(t *testing.T) {
	// The piece only fits rotated, but its grain direction after rotation
	// doesn't match the bin's, so it must report no fit at all.
	free := model.Rect{Width: 300, Length: 500}
	p := model.InternalPiece{
		Width: 500, Length: 300,
		Direction: model.DirectionParallelToWidth,
		CanRotate: true,
	}

	got := classifyFit(free, model.DirectionParallelToWidth, p, false)
	if !got.IsNone() {
		t.Fatalf("classifyFit() = %v, want FitNone (rotation would change incompatible direction)", got)
	}
}

func TestClassifyFit_CanRotateFalseBlocksRotatedFit(t *testing.T) {
	free := model.Rect{Width: 300, Length: 500}
	p := model.InternalPiece{Width: 500, Length: 300, Direction: model.DirectionNone, CanRotate: false}

	got := classifyFit(free, model.DirectionNone, p, false)
	if !got.IsNone() {
		t.Fatalf("classifyFit() = %v, want FitNone when CanRotate is false", got)
	}
}

func TestClassifyFit_PreferRotatedTieBreak(t *testing.T) {
	// A 500x400 piece fits the 600x600 rectangle both upright and rotated
	// (neither exact); preferRotated should select the rotated classification.
	free := model.Rect{Width: 600, Length: 600}
	p := model.InternalPiece{Width: 500, Length: 400, Direction: model.DirectionNone, CanRotate: true}

	upright := classifyFit(free, model.DirectionNone, p, false)
	rotated := classifyFit(free, model.DirectionNone, p, true)

	if !upright.IsUpright() {
		t.Errorf("preferRotated=false should yield upright, got %v", upright)
	}
	if !rotated.IsRotated() {
		t.Errorf("preferRotated=true should yield rotated, got %v", rotated)
	}
}

func TestPlacedDirection(t *testing.T) {
	p := model.InternalPiece{Direction: model.DirectionParallelToWidth}
	if got := placedDirection(p, false); got != model.DirectionParallelToWidth {
		t.Errorf("placedDirection(unrotated) = %v, want ParallelToWidth", got)
	}
	if got := placedDirection(p, true); got != model.DirectionParallelToLength {
		t.Errorf("placedDirection(rotated) = %v, want ParallelToLength", got)
	}
}

func TestCommonIntervalLength(t *testing.T) {
	tests := []struct {
		name                   string
		start1, end1           int
		start2, end2           int
		want                   int
	}{
		{"disjoint", 0, 10, 20, 30, 0},
		{"touching-at-edge", 0, 10, 10, 20, 0},
		{"full-overlap", 0, 10, 0, 10, 10},
		{"partial-overlap", 0, 10, 5, 15, 5},
		{"contained", 0, 20, 5, 15, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := commonIntervalLength(tc.start1, tc.end1, tc.start2, tc.end2)
			if got != tc.want {
				t.Errorf("commonIntervalLength(%d,%d,%d,%d) = %d, want %d", tc.start1, tc.end1, tc.start2, tc.end2, got, tc.want)
			}
		})
	}
}

func TestAbsMinMaxInt(t *testing.T) {
	if absInt(-5) != 5 || absInt(5) != 5 {
		t.Errorf("absInt incorrect")
	}
	if minInt(3, 7) != 3 || minInt(7, 3) != 3 {
		t.Errorf("minInt incorrect")
	}
	if maxInt(3, 7) != 7 || maxInt(7, 3) != 7 {
		t.Errorf("maxInt incorrect")
	}
}
