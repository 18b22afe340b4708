package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportOptions selects which export formats a CLI run should emit and
// where to write them. An empty path disables that format.
type ReportOptions struct {
	PDFPath string `json:"pdf_path,omitempty"`
	BOMPath string `json:"bom_path,omitempty"`
	DXFDir  string `json:"dxf_dir,omitempty"`
	QRPath  string `json:"qr_path,omitempty"`
}

// Settings holds the per-project optimizer configuration: everything a
// Builder needs besides the demand and stock lists themselves.
type Settings struct {
	CutWidth             int           `json:"cut_width"`
	RandomSeed           int64         `json:"random_seed"`
	AllowMixedStockSizes bool          `json:"allow_mixed_stock_sizes"`
	Report               ReportOptions `json:"report"`
}

// DefaultSettings returns the documented optimizer defaults: no kerf, seed
// 1, mixed stock sizes allowed.
func DefaultSettings() Settings {
	return Settings{
		RandomSeed:           1,
		AllowMixedStockSizes: true,
	}
}

// Project is the persisted unit of work: the demand and stock catalogues
// a shop fed in, the settings that produced a layout, and the most recent
// Solution found for them, if any.
type Project struct {
	Name         string        `json:"name"`
	DemandPieces []DemandPiece `json:"demand_pieces"`
	StockPieces  []StockPiece  `json:"stock_pieces"`
	Settings     Settings      `json:"settings"`
	LastSolution *Solution     `json:"last_solution,omitempty"`
}

// NewProject returns an empty project with the given name and default
// settings.
func NewProject(name string) Project {
	return Project{Name: name, Settings: DefaultSettings()}
}

// ProjectTemplate is a reusable bundle of demand, stock, and settings that
// can seed new projects without carrying over a prior solution.
type ProjectTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Demand      []DemandPiece `json:"demand_pieces"`
	Stock       []StockPiece  `json:"stock_pieces"`
	Settings    Settings      `json:"settings"`
}

// NewProjectTemplate captures a snapshot of demand, stock, and settings
// under a named, described template.
func NewProjectTemplate(name, description string, demand []DemandPiece, stock []StockPiece, settings Settings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Demand:      append([]DemandPiece(nil), demand...),
		Stock:       append([]StockPiece(nil), stock...),
		Settings:    settings,
	}
}

// ToProject instantiates a new, unsolved Project from this template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	return Project{
		Name:         projectName,
		DemandPieces: append([]DemandPiece(nil), t.Demand...),
		StockPieces:  append([]StockPiece(nil), t.Stock...),
		Settings:     t.Settings,
	}
}

// TemplateStore is the on-disk collection of saved ProjectTemplates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore returns an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProjectTemplate{}}
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (s *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return &s.Templates[i]
		}
	}
	return nil
}

// Upsert replaces the template sharing t's ID, or appends t if none match.
func (s *TemplateStore) Upsert(t ProjectTemplate) {
	for i := range s.Templates {
		if s.Templates[i].ID == t.ID {
			t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			s.Templates[i] = t
			return
		}
	}
	s.Templates = append(s.Templates, t)
}

// Remove deletes the template with the given ID, reporting whether one was
// found.
func (s *TemplateStore) Remove(id string) bool {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			s.Templates = append(s.Templates[:i], s.Templates[i+1:]...)
			return true
		}
	}
	return false
}
