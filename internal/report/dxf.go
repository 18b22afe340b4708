package report

import (
	"fmt"
	"path/filepath"

	"github.com/yofu/dxf"

	"github.com/piwi3910/nestcut/internal/model"
)

// WriteDXF writes one DXF drawing per stock piece into dir, named
// sheet-N.dxf: the sheet outline, every placed piece, and every waste
// rectangle, each as a closed loop of LINE entities — the mirror image of
// the teacher's DXF importer, which reads LWPOLYLINE/LINE/ARC/CIRCLE
// entities back into parts.
func WriteDXF(dir string, sol model.Solution) error {
	for i, sheet := range sol.StockPieces {
		path := filepath.Join(dir, fmt.Sprintf("sheet-%d.dxf", i+1))
		if err := writeSheetDXF(path, sheet); err != nil {
			return fmt.Errorf("report: sheet %d: %w", i+1, err)
		}
	}
	return nil
}

func writeSheetDXF(path string, sheet model.ResultStockPiece) error {
	d := dxf.NewDrawing()

	drawRectLines(d, 0, 0, sheet.Width, sheet.Length)
	for _, p := range sheet.Pieces {
		drawRectLines(d, p.X, p.Y, p.Width, p.Length)
	}
	for _, w := range sheet.WastePieces {
		drawRectLines(d, w.X, w.Y, w.Width, w.Length)
	}

	return d.SaveAs(path)
}

// drawRectLines draws the four edges of an axis-aligned rectangle as
// individual LINE entities on the drawing's current layer.
func drawRectLines(d *dxf.Drawing, x, y, width, length int) {
	x0, y0 := float64(x), float64(y)
	x1, y1 := float64(x+width), float64(y+length)

	d.Line(x0, y0, 0, x1, y0, 0)
	d.Line(x1, y0, 0, x1, y1, 0)
	d.Line(x1, y1, 0, x0, y1, 0)
	d.Line(x0, y1, 0, x0, y0, 0)
}
