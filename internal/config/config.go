// Package config loads the human-edited, shop-wide defaults a nestcut
// installation starts new projects from: kerf width, random seed, the
// mixed-stock-sizes policy, worker concurrency, and default report
// locations. It is kept separate from internal/project, which persists
// the machine-written per-run Project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/nestcut/internal/model"
)

// AppConfig holds the defaults new projects inherit unless overridden by
// CLI flags or a saved template.
type AppConfig struct {
	DefaultCutWidth             int    `yaml:"default_cut_width" default:"0"`
	DefaultRandomSeed           int64  `yaml:"default_random_seed" default:"1"`
	DefaultAllowMixedStockSizes bool   `yaml:"default_allow_mixed_stock_sizes" default:"true"`
	WorkerCount                 int    `yaml:"worker_count" default:"0"`
	DefaultReportDir            string `yaml:"default_report_dir" default:""`
}

// DefaultAppConfig returns an AppConfig populated via its `default` struct
// tags. Any error from defaults.Set indicates a malformed tag and is a
// programming error, not a runtime condition, so it panics.
func DefaultAppConfig() AppConfig {
	cfg := AppConfig{}
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("config: malformed default tags: %v", err))
	}
	return cfg
}

// Workers returns the configured worker count, substituting GOMAXPROCS
// when the config leaves it at its zero-value default.
func (c AppConfig) Workers() int {
	if c.WorkerCount > 0 {
		return c.WorkerCount
	}
	return runtime.GOMAXPROCS(0)
}

// ApplyToSettings copies this config's defaults into a project's Settings.
// It always overwrites; callers seeding an existing project from a saved
// template should call it before applying the template, not after.
func (c AppConfig) ApplyToSettings(s *model.Settings) {
	s.CutWidth = c.DefaultCutWidth
	s.RandomSeed = c.DefaultRandomSeed
	s.AllowMixedStockSizes = c.DefaultAllowMixedStockSizes
}

// DefaultPath returns ~/.nestcut/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".nestcut", "config.yaml")
}

// Load reads an AppConfig from path, applying struct-tag defaults first so
// a partial YAML file still yields a fully populated config. A missing
// file yields DefaultAppConfig() rather than an error.
func Load(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating any missing parent
// directories.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
