package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestBudget_DecrementAndCapacity(t *testing.T) {
	qty := 2
	sp := model.StockPiece{Width: 1000, Length: 500, Quantity: &qty}
	b := newBudget([]model.StockPiece{sp})

	if !b.hasCapacityFor(sp) {
		t.Fatal("expected capacity before any draws")
	}
	if !b.decrementFor(sp) {
		t.Fatal("first decrement should succeed")
	}
	if !b.hasCapacityFor(sp) {
		t.Fatal("expected capacity remaining after one draw of two")
	}
	if !b.decrementFor(sp) {
		t.Fatal("second decrement should succeed")
	}
	if b.hasCapacityFor(sp) {
		t.Fatal("expected no capacity after exhausting quantity")
	}
	if b.decrementFor(sp) {
		t.Fatal("decrement should fail once exhausted")
	}
}

func TestBudget_UnlimitedNeverExhausts(t *testing.T) {
	sp := model.StockPiece{Width: 1000, Length: 500, Quantity: nil}
	b := newBudget([]model.StockPiece{sp})

	for i := 0; i < 50; i++ {
		if !b.decrementFor(sp) {
			t.Fatalf("unlimited stock exhausted after %d draws", i)
		}
	}
}

func TestBudget_Clone_IsIndependent(t *testing.T) {
	qty := 1
	sp := model.StockPiece{Width: 1000, Length: 500, Quantity: &qty}
	b := newBudget([]model.StockPiece{sp})
	clone := b.clone()

	if !b.decrementFor(sp) {
		t.Fatal("decrement on original should succeed")
	}
	if !clone.hasCapacityFor(sp) {
		t.Fatal("clone should be unaffected by draws on the original")
	}
}

func TestStockFits_RespectsDirection(t *testing.T) {
	sp := model.StockPiece{Width: 1000, Length: 500, Direction: model.DirectionParallelToWidth}
	fitting := model.InternalPiece{Width: 200, Length: 100, Direction: model.DirectionParallelToWidth}
	mismatched := model.InternalPiece{Width: 200, Length: 100, Direction: model.DirectionParallelToLength, CanRotate: false}

	if !stockFits(sp, fitting) {
		t.Error("expected piece with matching direction to fit")
	}
	if stockFits(sp, mismatched) {
		t.Error("expected piece with incompatible, non-rotatable direction to not fit")
	}
}

func TestBudget_RandomFittingStock_ExcludesTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	small := model.StockPiece{Width: 50, Length: 50}
	large := model.StockPiece{Width: 1000, Length: 1000}
	b := newBudget([]model.StockPiece{small, large})

	piece := model.InternalPiece{Width: 500, Length: 500, CanRotate: true}

	for i := 0; i < 10; i++ {
		picked, ok := b.randomFittingStock(rng, piece)
		if !ok {
			t.Fatal("expected a fitting stock entry")
		}
		if !stockEquivalent(picked, large) {
			t.Fatalf("randomFittingStock picked %+v, want the large entry", picked)
		}
	}
}

func TestBudget_RandomFittingStock_NoneFit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := newBudget([]model.StockPiece{{Width: 50, Length: 50}})
	piece := model.InternalPiece{Width: 500, Length: 500}

	if _, ok := b.randomFittingStock(rng, piece); ok {
		t.Fatal("expected no fitting stock entry")
	}
}
