package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/nestcut/internal/model"
)

// WriteBOM writes a bill-of-materials workbook for sol: one "Stock" sheet
// summarizing consumed stock pieces, and one "Pieces" sheet listing every
// placement with its sheet index and orientation.
func WriteBOM(path string, sol model.Solution) error {
	f := excelize.NewFile()
	defer f.Close()

	const stockSheet = "Stock"
	const piecesSheet = "Pieces"

	f.SetSheetName(f.GetSheetName(0), stockSheet)
	if _, err := f.NewSheet(piecesSheet); err != nil {
		return fmt.Errorf("report: create pieces sheet: %w", err)
	}

	writeStockSheet(f, stockSheet, sol)
	writePiecesSheet(f, piecesSheet, sol)

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save workbook: %w", err)
	}
	return nil
}

func writeStockSheet(f *excelize.File, sheet string, sol model.Solution) {
	headers := []string{"#", "Width", "Length", "Direction", "Price", "Pieces Placed", "Waste Rects"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, s := range sol.StockPieces {
		row := i + 2
		values := []interface{}{i + 1, s.Width, s.Length, s.Direction.String(), s.Price, len(s.Pieces), len(s.WastePieces)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	totalRow := len(sol.StockPieces) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), sol.Price)
}

func writePiecesSheet(f *excelize.File, sheet string, sol model.Solution) {
	headers := []string{"Sheet #", "External ID", "X", "Y", "Width", "Length", "Direction", "Rotated"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	row := 2
	for sheetIdx, s := range sol.StockPieces {
		for _, p := range s.Pieces {
			values := []interface{}{sheetIdx + 1, p.ExternalID, p.X, p.Y, p.Width, p.Length, p.Direction.String(), p.IsRotated}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}
}
