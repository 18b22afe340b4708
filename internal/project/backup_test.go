package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/nestcut/internal/config"
	"github.com/piwi3910/nestcut/internal/model"
)

func TestExportImportAllData_RoundTrips(t *testing.T) {
	cfg := config.DefaultAppConfig()
	cfg.WorkerCount = 4
	inv := model.Inventory{Stocks: []model.StockPreset{model.NewStockPreset("Sheet", 100, 200, "Plywood")}}
	templates := model.NewTemplateStore()
	templates.Upsert(model.NewProjectTemplate("T1", "", nil, nil, model.DefaultSettings()))

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ExportAllData(path, cfg, inv, templates); err != nil {
		t.Fatalf("ExportAllData: %v", err)
	}

	got, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}
	if got.Version == "" {
		t.Error("expected a non-empty version field")
	}
	if got.Config.WorkerCount != 4 {
		t.Errorf("Config.WorkerCount = %d, want 4", got.Config.WorkerCount)
	}
	if len(got.Inventory.Stocks) != 1 {
		t.Errorf("Inventory.Stocks = %+v, want 1 entry", got.Inventory.Stocks)
	}
	if len(got.Templates.Templates) != 1 {
		t.Errorf("Templates.Templates = %+v, want 1 entry", got.Templates.Templates)
	}
}

func TestImportAllData_MissingVersionIsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected an error importing a backup file with no version field")
	}
}

func TestImportAllData_MissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error importing a non-existent backup file")
	}
}

func TestImportAllData_NilTemplatesNormalizedToEmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	body := `{"version":"1.0.0","templates":{}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}
	if got.Templates.Templates == nil {
		t.Error("expected a nil templates field to be normalized to an empty slice")
	}
}
