package model

import "github.com/google/uuid"

// StockPreset is a reusable, named stock-piece definition a shop can keep
// on file (a sheet size and material they buy routinely) and instantiate
// into a project's stock catalogue with a chosen quantity and price.
type StockPreset struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Width    int              `json:"width"`
	Length   int              `json:"length"`
	Material string           `json:"material"`
	Direction PatternDirection `json:"direction"`
}

// NewStockPreset creates a StockPreset with a generated ID.
func NewStockPreset(name string, width, length int, material string) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Length:   length,
		Material: material,
	}
}

// ToStockPiece instantiates the preset into a concrete StockPiece with the
// given price and quantity. A nil quantity means unlimited.
func (sp StockPreset) ToStockPiece(price int, quantity *int) StockPiece {
	return StockPiece{
		Width:     sp.Width,
		Length:    sp.Length,
		Direction: sp.Direction,
		Price:     price,
		Quantity:  quantity,
	}
}

// Inventory is the user's saved catalogue of stock presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common sheet-good
// sizes, in the same spirit as the teacher's built-in stock presets.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Plywood 2440x1220 (8'x4')", 2440, 1220, "Plywood"),
			NewStockPreset("MDF 2440x1220 (8'x4')", 2440, 1220, "MDF"),
			NewStockPreset("MDF 1220x610 (4'x2')", 1220, 610, "MDF"),
			NewStockPreset("Plywood 1220x610 (4'x2')", 1220, 610, "Plywood"),
			NewStockPreset("Acrylic 600x400", 600, 400, "Acrylic"),
			NewStockPreset("Aluminium 600x300", 600, 300, "Aluminium"),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or
// nil.
func (inv *Inventory) FindByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// Names returns the preset names, in catalogue order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}
