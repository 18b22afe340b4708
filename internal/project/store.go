// Package project persists the caller-facing data the optimizer core
// doesn't itself know about: named projects, reusable templates, and a
// stock-preset inventory, all as indented JSON files under a per-user
// config directory, following the teacher's save/load conventions.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/nestcut/internal/model"
)

// DefaultConfigDir returns ~/.nestcut, the directory all project-layer
// files are stored under by default.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".nestcut")
}

// Save writes a Project to path as indented JSON, creating any missing
// parent directories.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	return nil
}

// Load reads a Project from path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project file: %w", err)
	}
	return p, nil
}
