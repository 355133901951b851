package metrics

import (
	"errors"

	"github.com/prismlab/prism/pkg/component"
	"github.com/prismlab/prism/pkg/parser"
)

// ErrNilScanResult indicates a contract violation by the caller: the engine
// requires a scan result, even an empty one.
var ErrNilScanResult = errors.New("metrics: nil scan result")

// TreeSource supplies pre-parsed syntax trees by file path. A missing entry
// is a degraded case, not an error: affected components receive neutral
// default metrics.
type TreeSource interface {
	Tree(path string) (*parser.ParseResult, bool)
}

// Engine computes all five component metrics from one syntax-tree traversal
// per file. It is synchronous and holds no state beyond the result maps it
// builds; shards over disjoint file sets can be merged by plain union.
type Engine struct {
	trees    TreeSource
	resolver component.Resolver
}

// NewEngine creates an engine over the given tree source and component
// resolver. The resolver may be nil, in which case fan-out is zero.
func NewEngine(trees TreeSource, resolver component.Resolver) *Engine {
	return &Engine{trees: trees, resolver: resolver}
}

// Analyze computes metrics for every component. Components are grouped by
// file; each file's tree is classified once and every calculator runs
// against the same bound node. Files without a tree, and components whose
// defining node cannot be located, fall back to neutral defaults
// (cyclomatic 1, cognitive 0, maintainability 50); the summary-driven
// metrics are still computed.
func (e *Engine) Analyze(components []*component.Summary) (*Result, error) {
	if e.trees == nil {
		return nil, ErrNilScanResult
	}

	result := NewResult()

	byFile := make(map[string][]*component.Summary)
	for _, s := range components {
		if s == nil {
			continue
		}
		byFile[s.FullPath] = append(byFile[s.FullPath], s)
	}

	for path, comps := range byFile {
		parsed, ok := e.trees.Tree(path)
		if !ok || parsed == nil || parsed.Tree == nil {
			for _, s := range comps {
				e.applyDefaults(result, s)
			}
			continue
		}

		names := make([]string, 0, len(comps))
		for _, s := range comps {
			names = append(names, s.Name)
		}
		bound := ClassifyNodes(parsed, names)

		for _, s := range comps {
			id := s.ID()
			result.ComponentComplexity[id] = StructuralComplexity(s)
			result.CouplingDegree[id] = CouplingDegree(s, e.resolver)

			node, found := bound[s.Name]
			if !found || node == nil {
				result.CyclomaticComplexity[id] = DefaultCyclomatic
				result.CognitiveComplexity[id] = DefaultCognitive
				result.MaintainabilityIndex[id] = DefaultMaintainability
				continue
			}

			cyclomatic := CyclomaticComplexity(node, parsed.Source)
			result.CyclomaticComplexity[id] = cyclomatic
			result.CognitiveComplexity[id] = CognitiveComplexity(node, parsed.Source)
			result.MaintainabilityIndex[id] = MaintainabilityIndex(node, parsed.Source, cyclomatic, s)
		}
	}

	return result, nil
}

// applyDefaults records neutral tree metrics for a component whose file has
// no parsed tree. Structural and coupling scores still come from the
// summary.
func (e *Engine) applyDefaults(result *Result, s *component.Summary) {
	id := s.ID()
	result.ComponentComplexity[id] = StructuralComplexity(s)
	result.CouplingDegree[id] = CouplingDegree(s, e.resolver)
	result.CyclomaticComplexity[id] = DefaultCyclomatic
	result.CognitiveComplexity[id] = DefaultCognitive
	result.MaintainabilityIndex[id] = DefaultMaintainability
}
