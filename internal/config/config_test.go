package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestDefaultAppConfig_MatchesTags(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.DefaultCutWidth != 0 {
		t.Errorf("DefaultCutWidth = %d, want 0", cfg.DefaultCutWidth)
	}
	if cfg.DefaultRandomSeed != 1 {
		t.Errorf("DefaultRandomSeed = %d, want 1", cfg.DefaultRandomSeed)
	}
	if !cfg.DefaultAllowMixedStockSizes {
		t.Error("expected DefaultAllowMixedStockSizes to default true")
	}
	if cfg.WorkerCount != 0 {
		t.Errorf("WorkerCount = %d, want 0", cfg.WorkerCount)
	}
}

func TestAppConfig_Workers_FallsBackToGOMAXPROCS(t *testing.T) {
	cfg := DefaultAppConfig()
	if got := cfg.Workers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want GOMAXPROCS %d", got, runtime.GOMAXPROCS(0))
	}

	cfg.WorkerCount = 8
	if got := cfg.Workers(); got != 8 {
		t.Errorf("Workers() = %d, want the configured 8", got)
	}
}

func TestAppConfig_ApplyToSettings(t *testing.T) {
	cfg := AppConfig{DefaultCutWidth: 3, DefaultRandomSeed: 42, DefaultAllowMixedStockSizes: false}
	settings := model.DefaultSettings()

	cfg.ApplyToSettings(&settings)

	if settings.CutWidth != 3 {
		t.Errorf("CutWidth = %d, want 3", settings.CutWidth)
	}
	if settings.RandomSeed != 42 {
		t.Errorf("RandomSeed = %d, want 42", settings.RandomSeed)
	}
	if settings.AllowMixedStockSizes {
		t.Error("expected AllowMixedStockSizes to be overwritten to false")
	}
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultCutWidth = 5
	cfg.WorkerCount = 2
	cfg.DefaultReportDir = "/tmp/reports"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultCutWidth != 5 {
		t.Errorf("DefaultCutWidth = %d, want 5", got.DefaultCutWidth)
	}
	if got.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", got.WorkerCount)
	}
	if got.DefaultReportDir != "/tmp/reports" {
		t.Errorf("DefaultReportDir = %q, want /tmp/reports", got.DefaultReportDir)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of a missing file should not error: %v", err)
	}
	if cfg != DefaultAppConfig() {
		t.Errorf("Load(missing) = %+v, want %+v", cfg, DefaultAppConfig())
	}
}

func TestLoad_PartialYAMLKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_cut_width: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultCutWidth != 7 {
		t.Errorf("DefaultCutWidth = %d, want 7", cfg.DefaultCutWidth)
	}
	if cfg.DefaultRandomSeed != 1 {
		t.Errorf("DefaultRandomSeed = %d, want the struct-tag default of 1 to survive a partial file", cfg.DefaultRandomSeed)
	}
}

func TestDefaultPath_EndsInConfigYAML(t *testing.T) {
	if filepath.Base(DefaultPath()) != "config.yaml" {
		t.Errorf("DefaultPath() = %q, want a path ending in config.yaml", DefaultPath())
	}
}
