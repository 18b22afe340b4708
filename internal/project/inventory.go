package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/nestcut/internal/model"
)

// DefaultInventoryPath returns ~/.nestcut/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes inv to path as indented JSON.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create inventory directory: %w", err)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads an Inventory from path. If the file does not exist,
// it returns DefaultInventory and tries to persist it, so a fresh install
// starts with usable presets instead of an empty catalogue; a failure to
// write that file is ignored.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, nil
			}
			return inv, nil
		}
		return model.Inventory{}, fmt.Errorf("read inventory file: %w", err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("parse inventory file: %w", err)
	}
	return inv, nil
}
