package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestSaveLoad_RoundTrips(t *testing.T) {
	p := model.NewProject("Kitchen Cabinets")
	p.DemandPieces = []model.DemandPiece{{ExternalID: "door", Width: 400, Length: 700, Quantity: 4}}
	p.StockPieces = []model.StockPiece{{Width: 2440, Length: 1220, Price: 50}}

	path := filepath.Join(t.TempDir(), "sub", "project.json")
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("Name = %q, want %q", got.Name, p.Name)
	}
	if len(got.DemandPieces) != 1 || got.DemandPieces[0].ExternalID != "door" {
		t.Errorf("DemandPieces = %+v, want door piece to survive round trip", got.DemandPieces)
	}
	if len(got.StockPieces) != 1 || got.StockPieces[0].Width != 2440 {
		t.Errorf("StockPieces = %+v, want 2440-wide stock to survive round trip", got.StockPieces)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error loading a missing project file")
	}
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "project.json")
	if err := Save(path, model.NewProject("nested")); err != nil {
		t.Fatalf("Save into a non-existent nested directory should create it: %v", err)
	}
}

func TestDefaultConfigDir_EndsInNestcut(t *testing.T) {
	dir := DefaultConfigDir()
	if filepath.Base(dir) != ".nestcut" {
		t.Errorf("DefaultConfigDir() = %q, want a path ending in .nestcut", dir)
	}
}
