// Package report joins per-component metrics into ranked, renderable
// summaries.
package report

import (
	"math"
	"sort"

	"github.com/prismlab/prism/pkg/component"
	"github.com/prismlab/prism/pkg/metrics"
	"gonum.org/v1/gonum/stat"
)

// Row is one component's full metric set plus its composite risk score.
// The identity is carried as a plain string: named string types trip up
// the toon encoder, and every output format only needs the key's text.
type Row struct {
	Identity        string  `json:"id"`
	Name            string  `json:"name"`
	Path            string  `json:"path"`
	Structural      float64 `json:"structural_complexity"`
	Coupling        float64 `json:"coupling_degree"`
	Cyclomatic      uint32  `json:"cyclomatic_complexity"`
	Cognitive       uint32  `json:"cognitive_complexity"`
	Maintainability float64 `json:"maintainability_index"`
	Risk            float64 `json:"risk_score"`
}

// MetricStats holds distribution statistics for one metric across the
// analyzed components.
type MetricStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

// Summary aggregates distribution statistics for the whole run.
type Summary struct {
	Components      int         `json:"components"`
	Structural      MetricStats `json:"structural_complexity"`
	Coupling        MetricStats `json:"coupling_degree"`
	Cyclomatic      MetricStats `json:"cyclomatic_complexity"`
	Cognitive       MetricStats `json:"cognitive_complexity"`
	Maintainability MetricStats `json:"maintainability_index"`
}

// Report is the joined, risk-ranked view over one analysis run.
type Report struct {
	Rows    []Row   `json:"components"`
	Summary Summary `json:"summary"`
}

// Risk normalization caps. Values at or above a cap saturate that
// metric's contribution to 1.0.
const (
	structuralRiskCap = 50.0
	cyclomaticRiskCap = 20.0
	cognitiveRiskCap  = 30.0
)

// Composite risk weights.
const (
	weightStructural      = 0.25
	weightCoupling        = 0.25
	weightCyclomatic      = 0.20
	weightCognitive       = 0.20
	weightMaintainability = 0.10
)

// riskScore combines the five metrics into a single [0,1] score. High
// structural, coupling, cyclomatic, and cognitive values raise risk; a
// high maintainability index lowers it.
func riskScore(r Row) float64 {
	score := weightStructural*saturate(r.Structural/structuralRiskCap) +
		weightCoupling*saturate(r.Coupling) +
		weightCyclomatic*saturate(float64(r.Cyclomatic)/cyclomaticRiskCap) +
		weightCognitive*saturate(float64(r.Cognitive)/cognitiveRiskCap) +
		weightMaintainability*(1-saturate(r.Maintainability/100))
	return math.Round(score*1000) / 1000
}

func saturate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Build joins metric maps and component summaries into a ranked report.
// Components missing from the result get neutral values. Rows are sorted
// by risk descending; ties break on identity so the order is stable
// across runs.
func Build(components []*component.Summary, result *metrics.Result) *Report {
	rows := make([]Row, 0, len(components))

	for _, s := range components {
		id := s.ID()
		row := Row{
			Identity:        string(id),
			Name:            s.Name,
			Path:            s.FullPath,
			Cyclomatic:      metrics.DefaultCyclomatic,
			Cognitive:       metrics.DefaultCognitive,
			Maintainability: metrics.DefaultMaintainability,
		}
		if result != nil {
			if v, ok := result.ComponentComplexity[id]; ok {
				row.Structural = v
			}
			if v, ok := result.CouplingDegree[id]; ok {
				row.Coupling = v
			}
			if v, ok := result.CyclomaticComplexity[id]; ok {
				row.Cyclomatic = v
			}
			if v, ok := result.CognitiveComplexity[id]; ok {
				row.Cognitive = v
			}
			if v, ok := result.MaintainabilityIndex[id]; ok {
				row.Maintainability = v
			}
		}
		row.Risk = riskScore(row)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Risk != rows[j].Risk {
			return rows[i].Risk > rows[j].Risk
		}
		return rows[i].Identity < rows[j].Identity
	})

	return &Report{
		Rows:    rows,
		Summary: summarize(rows),
	}
}

// Top returns a copy of the report truncated to the n riskiest rows.
func (r *Report) Top(n int) *Report {
	if n <= 0 || n >= len(r.Rows) {
		return r
	}
	return &Report{Rows: r.Rows[:n], Summary: r.Summary}
}

func summarize(rows []Row) Summary {
	n := len(rows)
	s := Summary{Components: n}
	if n == 0 {
		return s
	}

	structural := make([]float64, n)
	coupling := make([]float64, n)
	cyclomatic := make([]float64, n)
	cognitive := make([]float64, n)
	maintainability := make([]float64, n)
	for i, row := range rows {
		structural[i] = row.Structural
		coupling[i] = row.Coupling
		cyclomatic[i] = float64(row.Cyclomatic)
		cognitive[i] = float64(row.Cognitive)
		maintainability[i] = row.Maintainability
	}

	s.Structural = describe(structural)
	s.Coupling = describe(coupling)
	s.Cyclomatic = describe(cyclomatic)
	s.Cognitive = describe(cognitive)
	s.Maintainability = describe(maintainability)
	return s
}

// describe computes distribution statistics for one metric. Quantiles
// require ascending order, so the slice is sorted in place.
func describe(values []float64) MetricStats {
	sort.Float64s(values)

	stats := MetricStats{
		Mean: stat.Mean(values, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, values, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, values, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, values, nil),
	}
	if len(values) > 1 {
		stats.StdDev = stat.StdDev(values, nil)
	}
	return stats
}
