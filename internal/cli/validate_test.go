package cli

import (
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func TestValidateProject(t *testing.T) {
	qty := 5

	tests := []struct {
		name       string
		project    model.Project
		wantProbes int
	}{
		{
			name: "clean project",
			project: model.Project{
				DemandPieces: []model.DemandPiece{{ExternalID: "a", Width: 100, Length: 200, Quantity: 2}},
				StockPieces:  []model.StockPiece{{Width: 1000, Length: 2000, Quantity: &qty}},
				Settings:     model.DefaultSettings(),
			},
			wantProbes: 0,
		},
		{
			name:       "empty project",
			project:    model.Project{Settings: model.DefaultSettings()},
			wantProbes: 2,
		},
		{
			name: "bad dimensions and quantity",
			project: model.Project{
				DemandPieces: []model.DemandPiece{{ExternalID: "a", Width: 0, Length: -5, Quantity: 0}},
				StockPieces:  []model.StockPiece{{Width: 100, Length: 100}},
				Settings:     model.DefaultSettings(),
			},
			wantProbes: 2,
		},
		{
			name: "negative cut width",
			project: model.Project{
				DemandPieces: []model.DemandPiece{{ExternalID: "a", Width: 10, Length: 10, Quantity: 1}},
				StockPieces:  []model.StockPiece{{Width: 100, Length: 100}},
				Settings:     model.Settings{CutWidth: -1},
			},
			wantProbes: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			problems := validateProject(tc.project)
			if len(problems) != tc.wantProbes {
				t.Errorf("validateProject() = %d problems %v, want %d", len(problems), problems, tc.wantProbes)
			}
		})
	}
}
