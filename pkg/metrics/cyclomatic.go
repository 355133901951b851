package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultCyclomatic is the neutral fallback when no tree or node is
// available for a component.
const DefaultCyclomatic uint32 = 1

// CyclomaticComplexity counts the decision points in a component's syntax
// subtree, starting from a base of 1. Nested function-like subtrees are
// excluded entirely: an inner function's branches would be scored
// independently if it were itself a registered component, so they never
// inflate the parent's score.
func CyclomaticComplexity(node *sitter.Node, src []byte) uint32 {
	node = measurableNode(node)
	if node == nil {
		return DefaultCyclomatic
	}
	return 1 + countDecisionPoints(node, src, true)
}

func countDecisionPoints(n *sitter.Node, src []byte, isRoot bool) uint32 {
	if n == nil {
		return 0
	}

	kind := classify(n, src)
	if kind == KindFunction && !isRoot {
		return 0
	}

	var count uint32
	switch kind {
	case KindIf, KindTernary, KindLoop, KindSwitchCase, KindCatch,
		KindLogicalAnd, KindLogicalOr, KindNullish, KindOptionalChain:
		count = 1
	case KindJSXExpression:
		// Conditional-rendering patterns: `{cond && <X/>}` or a ternary in
		// markup. Charged on top of the wrapped operator's own increment.
		if markupConditional(n, src) {
			count = 1
		}
	}

	for i := range int(n.ChildCount()) {
		count += countDecisionPoints(n.Child(i), src, false)
	}
	return count
}
