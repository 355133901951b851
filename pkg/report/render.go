package report

import (
	"fmt"
	"io"

	"github.com/prismlab/prism/internal/output"
)

var tableHeaders = []string{"Rank", "Component", "Path", "Risk", "Structural", "Coupling", "Cyclomatic", "Cognitive", "MI"}

// RenderData returns the report itself for structured serialization.
func (r *Report) RenderData() any {
	return r
}

// RenderText writes the ranked table and summary statistics.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	tbl := output.NewTable("Component Risk Ranking", tableHeaders, r.rows(colored), nil, nil)
	if err := tbl.RenderText(w, colored); err != nil {
		return err
	}
	return r.summarySection().RenderText(w, colored)
}

// RenderMarkdown writes the ranked table and summary statistics.
func (r *Report) RenderMarkdown(w io.Writer) error {
	tbl := output.NewTable("Component Risk Ranking", tableHeaders, r.rows(false), nil, nil)
	if err := tbl.RenderMarkdown(w); err != nil {
		return err
	}
	return r.summarySection().RenderMarkdown(w)
}

func (r *Report) rows(colored bool) [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		risk := fmt.Sprintf("%.3f", row.Risk)
		if colored {
			risk = output.SeverityColor(riskSeverity(row.Risk), risk)
		}
		out[i] = []string{
			fmt.Sprintf("%d", i+1),
			row.Name,
			row.Path,
			risk,
			fmt.Sprintf("%.1f", row.Structural),
			fmt.Sprintf("%.2f", row.Coupling),
			fmt.Sprintf("%d", row.Cyclomatic),
			fmt.Sprintf("%d", row.Cognitive),
			fmt.Sprintf("%.2f", row.Maintainability),
		}
	}
	return out
}

// riskSeverity buckets a composite risk score for display.
func riskSeverity(risk float64) string {
	switch {
	case risk >= 0.6:
		return "high"
	case risk >= 0.3:
		return "medium"
	default:
		return "low"
	}
}

func (r *Report) summarySection() *output.Section {
	s := r.Summary
	return &output.Section{
		Title: "Summary",
		Content: fmt.Sprintf(
			"%d components\nstructural   mean %.1f  p90 %.1f\ncoupling     mean %.2f  p90 %.2f\ncyclomatic   mean %.1f  p90 %.0f\ncognitive    mean %.1f  p90 %.0f\nmaintainability mean %.1f  p50 %.1f",
			s.Components,
			s.Structural.Mean, s.Structural.P90,
			s.Coupling.Mean, s.Coupling.P90,
			s.Cyclomatic.Mean, s.Cyclomatic.P90,
			s.Cognitive.Mean, s.Cognitive.P90,
			s.Maintainability.Mean, s.Maintainability.P50,
		),
	}
}
