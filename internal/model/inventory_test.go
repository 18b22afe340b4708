package model

import "testing"

func TestDefaultInventory_HasPresets(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Stocks) == 0 {
		t.Fatal("expected DefaultInventory to seed at least one preset")
	}
	for _, s := range inv.Stocks {
		if s.ID == "" {
			t.Errorf("preset %q has no ID", s.Name)
		}
	}
}

func TestStockPreset_ToStockPiece(t *testing.T) {
	preset := NewStockPreset("Test Sheet", 100, 200, "Plywood")
	qty := 3
	piece := preset.ToStockPiece(50, &qty)

	if piece.Width != 100 || piece.Length != 200 {
		t.Errorf("ToStockPiece dimensions = %dx%d, want 100x200", piece.Width, piece.Length)
	}
	if piece.Price != 50 {
		t.Errorf("Price = %d, want 50", piece.Price)
	}
	if piece.Quantity == nil || *piece.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3", piece.Quantity)
	}
}

func TestStockPreset_ToStockPiece_UnlimitedWhenNilQuantity(t *testing.T) {
	preset := NewStockPreset("Test Sheet", 100, 200, "Plywood")
	piece := preset.ToStockPiece(50, nil)
	if !piece.Unlimited() {
		t.Error("expected nil quantity to produce an unlimited stock piece")
	}
}

func TestInventory_FindByIDAndName(t *testing.T) {
	inv := DefaultInventory()
	want := inv.Stocks[0]

	if found := inv.FindByID(want.ID); found == nil || found.Name != want.Name {
		t.Errorf("FindByID(%q) = %v, want %v", want.ID, found, want)
	}
	if found := inv.FindByName(want.Name); found == nil || found.ID != want.ID {
		t.Errorf("FindByName(%q) = %v, want %v", want.Name, found, want)
	}
	if found := inv.FindByID("does-not-exist"); found != nil {
		t.Errorf("FindByID of unknown ID = %v, want nil", found)
	}
	if found := inv.FindByName("does-not-exist"); found != nil {
		t.Errorf("FindByName of unknown name = %v, want nil", found)
	}
}

func TestInventory_Names(t *testing.T) {
	inv := DefaultInventory()
	names := inv.Names()
	if len(names) != len(inv.Stocks) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(inv.Stocks))
	}
	for i, s := range inv.Stocks {
		if names[i] != s.Name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], s.Name)
		}
	}
}
