package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestSaveLoadInventory_RoundTrips(t *testing.T) {
	inv := model.Inventory{Stocks: []model.StockPreset{
		model.NewStockPreset("Custom Sheet", 1000, 500, "HDPE"),
	}}
	path := filepath.Join(t.TempDir(), "inventory.json")

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	got, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if len(got.Stocks) != 1 || got.Stocks[0].Name != "Custom Sheet" {
		t.Errorf("Stocks = %+v, want the custom preset to survive round trip", got.Stocks)
	}
}

func TestLoadInventory_MissingFileSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory of a missing file should not error: %v", err)
	}
	if len(inv.Stocks) == 0 {
		t.Fatal("expected LoadInventory to seed default presets for a missing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected LoadInventory to persist the seeded defaults to disk: %v", err)
	}
}

func TestDefaultInventoryPath_EndsInInventoryJSON(t *testing.T) {
	if filepath.Base(DefaultInventoryPath()) != "inventory.json" {
		t.Errorf("DefaultInventoryPath() = %q, want a path ending in inventory.json", DefaultInventoryPath())
	}
}
