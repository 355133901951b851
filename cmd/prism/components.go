package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/prismlab/prism/internal/analysis"
	"github.com/prismlab/prism/internal/output"
	"github.com/prismlab/prism/internal/progress"
	"github.com/prismlab/prism/pkg/config"
	"github.com/prismlab/prism/pkg/report"
	"github.com/urfave/cli/v2"
)

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:      "components",
		Aliases:   []string{"cm"},
		Usage:     "Compute metrics for every component",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Value: "name",
				Usage: "Sort rows by: name, path, risk",
			},
		},
		Action: runComponents,
	}
}

func runComponents(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Analyzing components...")
	svc := analysis.New(cfg)
	run, err := svc.AnalyzePaths(c.Context, getPaths(c), tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	if run.Errors != nil && run.Errors.HasErrors() {
		if cfg.Output.Verbose {
			for _, pe := range run.Errors.Errors {
				color.Yellow("skipped %s: %v", pe.Path, pe.Err)
			}
		} else {
			color.Yellow("%d files skipped due to parse errors (use --verbose for details)", len(run.Errors.Errors))
		}
	}

	if len(run.Components) == 0 {
		color.Yellow("No components found in %d files", run.FilesScanned)
		return nil
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := append([]report.Row(nil), run.Report.Rows...)
	sortRows(rows, c.String("sort"))

	table := output.NewTable(
		"Components",
		[]string{"Component", "Path", "Structural", "Coupling", "Cyclomatic", "Cognitive", "MI"},
		componentRows(rows, cfg, formatter.Colored()),
		[]string{"Total", fmt.Sprintf("%d components / %d files", len(rows), run.FilesScanned), "", "", "", "", ""},
		struct {
			Components []report.Row   `json:"components" toon:"components"`
			Summary    report.Summary `json:"summary" toon:"summary"`
		}{rows, run.Report.Summary},
	)
	return formatter.Output(table)
}

func sortRows(rows []report.Row, key string) {
	switch key {
	case "risk":
		// Already risk-ordered.
	case "path":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	default:
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Name != rows[j].Name {
				return rows[i].Name < rows[j].Name
			}
			return rows[i].Path < rows[j].Path
		})
	}
}

func componentRows(rows []report.Row, cfg *config.Config, colored bool) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		structural := fmt.Sprintf("%.1f", row.Structural)
		coupling := fmt.Sprintf("%.2f", row.Coupling)
		cyclomatic := fmt.Sprintf("%d", row.Cyclomatic)
		cognitive := fmt.Sprintf("%d", row.Cognitive)
		mi := fmt.Sprintf("%.2f", row.Maintainability)

		if colored {
			if row.Structural >= cfg.Thresholds.StructuralComplexity {
				structural = color.RedString(structural)
			}
			if row.Coupling >= cfg.Thresholds.CouplingDegree {
				coupling = color.RedString(coupling)
			}
			if row.Cyclomatic > uint32(cfg.Thresholds.CyclomaticComplexity) {
				cyclomatic = color.RedString(cyclomatic)
			}
			if row.Cognitive > uint32(cfg.Thresholds.CognitiveComplexity) {
				cognitive = color.RedString(cognitive)
			}
			if row.Maintainability < cfg.Thresholds.MaintainabilityIndex {
				mi = color.RedString(mi)
			}
		}

		out[i] = []string{row.Name, row.Path, structural, coupling, cyclomatic, cognitive, mi}
	}
	return out
}
