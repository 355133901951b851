package metrics

import (
	"github.com/prismlab/prism/pkg/component"
)

// Result holds the five metric maps produced by one analysis run, each
// keyed by component identity. A fresh Result is built per run; nothing is
// retained across invocations.
type Result struct {
	ComponentComplexity  map[component.Identity]float64 `json:"component_complexity"`
	CouplingDegree       map[component.Identity]float64 `json:"coupling_degree"`
	CyclomaticComplexity map[component.Identity]uint32  `json:"cyclomatic_complexity"`
	CognitiveComplexity  map[component.Identity]uint32  `json:"cognitive_complexity"`
	MaintainabilityIndex map[component.Identity]float64 `json:"maintainability_index"`
}

// NewResult allocates empty metric maps.
func NewResult() *Result {
	return &Result{
		ComponentComplexity:  make(map[component.Identity]float64),
		CouplingDegree:       make(map[component.Identity]float64),
		CyclomaticComplexity: make(map[component.Identity]uint32),
		CognitiveComplexity:  make(map[component.Identity]uint32),
		MaintainabilityIndex: make(map[component.Identity]float64),
	}
}

// Merge unions another result into this one. Identities are unique per
// component, so shards covering disjoint file sets merge without conflict
// in any order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for id, v := range other.ComponentComplexity {
		r.ComponentComplexity[id] = v
	}
	for id, v := range other.CouplingDegree {
		r.CouplingDegree[id] = v
	}
	for id, v := range other.CyclomaticComplexity {
		r.CyclomaticComplexity[id] = v
	}
	for id, v := range other.CognitiveComplexity {
		r.CognitiveComplexity[id] = v
	}
	for id, v := range other.MaintainabilityIndex {
		r.MaintainabilityIndex[id] = v
	}
}

// Len returns the number of components with metric entries.
func (r *Result) Len() int {
	return len(r.ComponentComplexity)
}
