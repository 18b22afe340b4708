package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/nestcut/internal/model"
)

func buildTestSolution() model.Solution {
	return model.Solution{
		Fitness: 0.92,
		Price:   4500,
		StockPieces: []model.ResultStockPiece{
			{
				Width: 2440, Length: 1220, Direction: model.DirectionNone, Price: 3000,
				Pieces: []model.ResultPlacedPiece{
					{ExternalID: "side-panel", X: 10, Y: 10, Width: 600, Length: 400},
					{ExternalID: "top", X: 620, Y: 10, Width: 500, Length: 300},
					{ExternalID: "shelf", X: 10, Y: 420, Width: 400, Length: 300, IsRotated: true},
				},
				WastePieces: []model.Rect{{X: 1120, Y: 10, Width: 1300, Length: 1200}},
			},
			{
				Width: 1200, Length: 600, Direction: model.DirectionNone, Price: 1500,
				Pieces: []model.ResultPlacedPiece{
					{ExternalID: "back-panel", X: 10, Y: 10, Width: 800, Length: 500},
				},
			},
		},
	}
}

func TestWritePDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	if err := WritePDF(path, "Kitchen Cabinet", buildTestSolution()); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF_EmptySolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := WritePDF(path, "Empty", model.Solution{})
	if err == nil {
		t.Fatal("expected error for empty solution, got nil")
	}
}

func TestSheetAreas(t *testing.T) {
	sheet := model.ResultStockPiece{
		Width: 100, Length: 100,
		Pieces: []model.ResultPlacedPiece{{Width: 20, Length: 30}, {Width: 10, Length: 10}},
	}
	used, total := sheetAreas(sheet)
	if used != 700 {
		t.Errorf("used area = %v, want 700", used)
	}
	if total != 10000 {
		t.Errorf("total area = %v, want 10000", total)
	}
}
