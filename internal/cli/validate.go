package cli

import (
	"fmt"

	"github.com/piwi3910/nestcut/internal/model"
	"github.com/piwi3910/nestcut/internal/project"
)

// CmdValidate loads a project file and reports basic structural problems
// without running a search: empty demand or stock, non-positive
// dimensions, and zero-quantity demand pieces.
type CmdValidate struct {
	Args struct {
		Path string `positional-arg-name:"project" description:"Path to the project JSON file" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the validate command.
func (c *CmdValidate) Execute(args []string) error {
	log := newLogger()

	p, err := project.Load(c.Args.Path)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	problems := validateProject(p)
	merged := model.MergeStockPieces(p.StockPieces)
	expanded, _ := model.ExpandDemandPieces(p.DemandPieces, 0)

	log.Info("validated project",
		"name", p.Name,
		"stock_entries", len(merged),
		"demand_entries", len(p.DemandPieces),
		"expanded_pieces", len(expanded),
		"problems", len(problems),
	)

	if len(problems) > 0 {
		for _, prob := range problems {
			log.Warn("validation issue", "detail", prob)
		}
		return fmt.Errorf("project has %d validation issue(s)", len(problems))
	}

	return nil
}

func validateProject(p model.Project) []string {
	var problems []string

	if len(p.DemandPieces) == 0 {
		problems = append(problems, "project has no demand pieces")
	}
	if len(p.StockPieces) == 0 {
		problems = append(problems, "project has no stock pieces")
	}
	for _, dp := range p.DemandPieces {
		if dp.Width <= 0 || dp.Length <= 0 {
			problems = append(problems, fmt.Sprintf("demand piece %q has non-positive dimensions (%dx%d)", dp.ExternalID, dp.Width, dp.Length))
		}
		if dp.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("demand piece %q has non-positive quantity (%d)", dp.ExternalID, dp.Quantity))
		}
	}
	for i, sp := range p.StockPieces {
		if sp.Width <= 0 || sp.Length <= 0 {
			problems = append(problems, fmt.Sprintf("stock piece #%d has non-positive dimensions (%dx%d)", i, sp.Width, sp.Length))
		}
		if sp.Quantity != nil && *sp.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("stock piece #%d has non-positive quantity (%d)", i, *sp.Quantity))
		}
	}
	if p.Settings.CutWidth < 0 {
		problems = append(problems, fmt.Sprintf("cut width must be >= 0, got %d", p.Settings.CutWidth))
	}

	return problems
}
