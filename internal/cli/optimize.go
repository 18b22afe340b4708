package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/piwi3910/nestcut/internal/engine"
	"github.com/piwi3910/nestcut/internal/model"
	"github.com/piwi3910/nestcut/internal/project"
	"github.com/piwi3910/nestcut/internal/report"
)

// CmdOptimize runs a project file through the optimizer and writes its
// solved form back out, plus any reports the project's Settings request.
type CmdOptimize struct {
	Args struct {
		Path string `positional-arg-name:"project" description:"Path to the project JSON file" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	Algorithm string `short:"a" long:"algorithm" description:"Packing strategy: guillotine or nested" default:"guillotine" choice:"guillotine" choice:"nested"`
	Out       string `short:"o" long:"out" description:"Write the solved project to this path instead of overwriting the input"`
}

// Execute runs the optimize command.
func (c *CmdOptimize) Execute(args []string) error {
	log := newLogger()

	p, err := project.Load(c.Args.Path)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	log.Info("loaded project", "name", p.Name, "demand_pieces", len(p.DemandPieces), "stock_pieces", len(p.StockPieces))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	builder := engine.NewBuilder()
	for _, sp := range p.StockPieces {
		builder.AddStockPiece(sp)
	}
	for _, dp := range p.DemandPieces {
		builder.AddCutPiece(dp)
	}
	builder.SetCutWidth(p.Settings.CutWidth)
	builder.SetRandomSeed(p.Settings.RandomSeed)
	builder.SetAllowMixedStockSizes(p.Settings.AllowMixedStockSizes)

	progress := func(f float64) {
		log.Debug("search progress", "fraction", f)
	}

	var sol model.Solution
	switch c.Algorithm {
	case "nested":
		sol, err = builder.OptimizeNested(ctx, progress)
	default:
		sol, err = builder.OptimizeGuillotine(ctx, progress)
	}
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	log.Info("solved project", "fitness", sol.Fitness, "price", sol.Price, "stock_pieces_used", len(sol.StockPieces))

	p.LastSolution = &sol

	outPath := c.Out
	if outPath == "" {
		outPath = c.Args.Path
	}
	if err := project.Save(outPath, p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	if err := writeReports(log, p, sol); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	return nil
}

// writeReports emits every report format configured on p.Settings.Report,
// skipping any whose output path was left empty.
func writeReports(log interface{ Info(string, ...any) }, p model.Project, sol model.Solution) error {
	opts := p.Settings.Report

	if opts.PDFPath != "" {
		if err := report.WritePDF(opts.PDFPath, p.Name, sol); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		log.Info("wrote report", "format", "pdf", "path", opts.PDFPath)
	}
	if opts.BOMPath != "" {
		if err := report.WriteBOM(opts.BOMPath, sol); err != nil {
			return fmt.Errorf("bom: %w", err)
		}
		log.Info("wrote report", "format", "bom", "path", opts.BOMPath)
	}
	if opts.DXFDir != "" {
		if err := os.MkdirAll(opts.DXFDir, 0755); err != nil {
			return fmt.Errorf("dxf dir: %w", err)
		}
		if err := report.WriteDXF(opts.DXFDir, sol); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		log.Info("wrote report", "format", "dxf", "path", opts.DXFDir)
	}
	if opts.QRPath != "" {
		tag := report.JobTag{
			ProjectName: p.Name,
			SheetCount:  len(sol.StockPieces),
			TotalPrice:  sol.Price,
		}
		if err := report.WriteJobQR(opts.QRPath, tag); err != nil {
			return fmt.Errorf("qr: %w", err)
		}
		log.Info("wrote report", "format", "qr", "path", opts.QRPath)
	}

	return nil
}
