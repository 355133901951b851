package main

import (
	"github.com/fatih/color"
	"github.com/prismlab/prism/internal/analysis"
	"github.com/prismlab/prism/internal/output"
	"github.com/prismlab/prism/internal/progress"
	"github.com/urfave/cli/v2"
)

func rankCmd() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Rank components by composite risk",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Show only the N riskiest components",
			},
		},
		Action: runRank,
	}
}

func runRank(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Ranking components...")
	svc := analysis.New(cfg)
	run, err := svc.AnalyzePaths(c.Context, getPaths(c), tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	if len(run.Components) == 0 {
		color.Yellow("No components found in %d files", run.FilesScanned)
		return nil
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rep := run.Report
	if n := c.Int("top"); n > 0 {
		rep = rep.Top(n)
	}
	return formatter.Output(rep)
}
