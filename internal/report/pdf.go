// Package report renders a finished optimizer Solution into the formats a
// shop floor actually consumes: PDF cut sheets, an XLSX bill of materials,
// per-sheet DXF layouts, and a QR-coded job tag.
package report

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/nestcut/internal/model"
)

// pieceColor is an RGB color used to fill one placed piece's rectangle.
type pieceColor struct {
	R, G, B int
}

// pieceColors cycles through a fixed palette so adjacent pieces on a sheet
// are visually distinguishable without tracking per-piece state.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
	{R: 255, G: 235, B: 59},
	{R: 121, G: 85, B: 72},
}

// Page layout constants (A4 landscape in mm); piece coordinates are treated
// as millimeters for the purpose of rendering.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// WritePDF renders sol as one cut-diagram page per stock piece, followed
// by a summary page, and writes the result to path.
func WritePDF(path string, projectName string, sol model.Solution) error {
	if len(sol.StockPieces) == 0 {
		return fmt.Errorf("report: no stock pieces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sheet := range sol.StockPieces {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, projectName, sol)

	return pdf.OutputFileAndClose(path)
}

func renderSheetPage(pdf *fpdf.Fpdf, sheet model.ResultStockPiece, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %d x %d (%s)", sheetNum, sheet.Width, sheet.Length, sheet.Direction)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	usedArea, totalArea := sheetAreas(sheet)
	efficiency := 0.0
	if totalArea > 0 {
		efficiency = 100 * usedArea / totalArea
	}
	stats := fmt.Sprintf("Pieces: %d | Used area: %.0f | Total area: %.0f | Efficiency: %.1f%% | Price: %d",
		len(sheet.Pieces), usedArea, totalArea, efficiency, sheet.Price)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scaleX := drawWidth / float64(sheet.Width)
	scaleY := drawHeight / float64(sheet.Length)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(sheet.Width) * scale
	canvasH := float64(sheet.Length) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Pieces {
		col := pieceColors[i%len(pieceColors)]
		pw := float64(p.Width) * scale
		ph := float64(p.Length) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		label := p.ExternalID
		if label == "" {
			label = fmt.Sprintf("%dx%d", p.Width, p.Length)
		}
		if p.IsRotated {
			label += " (R)"
		}
		if pw > 10 && ph > 6 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetXY(px, py+ph/2-2)
			pdf.CellFormat(pw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	for _, w := range sheet.WastePieces {
		pw := float64(w.Width) * scale
		ph := float64(w.Length) * scale
		if pw < 0.5 || ph < 0.5 {
			continue
		}
		px := offsetX + float64(w.X)*scale
		py := offsetY + float64(w.Y)*scale
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "D")
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, projectName string, sol model.Solution) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, fmt.Sprintf("%s — Summary", projectName), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	y := marginTop + headerHeight + 5
	lines := []string{
		fmt.Sprintf("Stock pieces used: %d", len(sol.StockPieces)),
		fmt.Sprintf("Total price: %d", sol.Price),
		fmt.Sprintf("Fitness: %.4f", sol.Fitness),
	}
	totalPieces := 0
	for _, s := range sol.StockPieces {
		totalPieces += len(s.Pieces)
	}
	lines = append(lines, fmt.Sprintf("Total placed pieces: %d", totalPieces))

	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, line, "", 0, "L", false, 0, "")
		y += 7
	}
}

// sheetAreas returns (used, total) area for one result stock piece, used
// for the efficiency line on its cut-diagram page.
func sheetAreas(sheet model.ResultStockPiece) (used, total float64) {
	for _, p := range sheet.Pieces {
		used += float64(p.Width * p.Length)
	}
	total = float64(sheet.Width * sheet.Length)
	return used, total
}
