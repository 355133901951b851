package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultCognitive is the neutral fallback when no tree or node is
// available for a component.
const DefaultCognitive uint32 = 0

// CognitiveComplexity computes nesting-weighted decision-point complexity
// for a component subtree. Unlike the cyclomatic walk, nested function-like
// subtrees are not dropped: they count toward the same component total but
// re-enter the walk at nesting level 0, so an inline callback does not
// inherit the nesting depth of the markup around it.
func CognitiveComplexity(node *sitter.Node, src []byte) uint32 {
	node = measurableNode(node)
	if node == nil {
		return DefaultCognitive
	}

	w := cognitiveWalker{src: src, root: node}
	return w.walk(node, 0)
}

// cognitiveWalker threads the accumulator state through the recursion; no
// state outlives a single component's walk.
type cognitiveWalker struct {
	src  []byte
	root *sitter.Node
}

func (w *cognitiveWalker) walk(n *sitter.Node, nesting uint32) uint32 {
	if n == nil {
		return 0
	}

	switch classify(n, w.src) {
	case KindIf:
		return w.walkIf(n, nesting)

	case KindLoop:
		total := 1 + nesting
		body := n.ChildByFieldName("body")
		total += w.walkChildrenExcept(n, nesting, body)
		total += w.walk(body, nesting+1)
		return total

	case KindSwitch:
		return w.walkSwitch(n, nesting)

	case KindTry:
		return w.walkTry(n, nesting)

	case KindTernary:
		total := 1 + nesting
		total += w.walk(n.ChildByFieldName("condition"), nesting)
		total += w.walk(n.ChildByFieldName("consequence"), nesting+1)
		total += w.walk(n.ChildByFieldName("alternative"), nesting+1)
		return total

	case KindLogicalAnd, KindLogicalOr:
		return 1 + nesting + w.walkChildren(n, nesting)

	case KindNullish:
		// Nullish coalescing reads as a default value, not a branch: flat
		// charge regardless of depth.
		return 1 + w.walkChildren(n, nesting)

	case KindJSXExpression:
		total := w.walkChildren(n, nesting)
		if markupConditional(n, w.src) {
			total += 1 + nesting
		}
		return total

	case KindFunction:
		if sameNode(n, w.root) {
			return w.walkChildren(n, nesting)
		}
		// Fresh scope: cost still accrues to this component, nesting resets.
		return w.walkChildren(n, 0)

	default:
		return w.walkChildren(n, nesting)
	}
}

func (w *cognitiveWalker) walkIf(n *sitter.Node, nesting uint32) uint32 {
	total := 1 + nesting
	total += w.walk(n.ChildByFieldName("condition"), nesting)
	total += w.walk(n.ChildByFieldName("consequence"), nesting+1)

	if alt := n.ChildByFieldName("alternative"); alt != nil {
		// `else if` chains stay at the current level so a flat chain does
		// not compound; a plain else block nests.
		if chained := elseIfStatement(alt); chained != nil {
			total += w.walk(chained, nesting)
		} else {
			total += w.walkElseBody(alt, nesting+1)
		}
	}
	return total
}

// elseIfStatement returns the if-statement inside an else clause, or nil.
func elseIfStatement(elseClause *sitter.Node) *sitter.Node {
	for i := range int(elseClause.NamedChildCount()) {
		child := elseClause.NamedChild(i)
		if child.Type() == "if_statement" {
			return child
		}
		return nil
	}
	return nil
}

// walkElseBody visits an else clause's contents at the given level without
// charging for the clause itself.
func (w *cognitiveWalker) walkElseBody(elseClause *sitter.Node, nesting uint32) uint32 {
	var total uint32
	for i := range int(elseClause.NamedChildCount()) {
		total += w.walk(elseClause.NamedChild(i), nesting)
	}
	return total
}

func (w *cognitiveWalker) walkSwitch(n *sitter.Node, nesting uint32) uint32 {
	total := 1 + nesting

	if value := n.ChildByFieldName("value"); value != nil {
		total += w.walk(value, nesting)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return total
	}

	for i := range int(body.NamedChildCount()) {
		clause := body.NamedChild(i)
		switch classify(clause, w.src) {
		case KindSwitchCase:
			total += 1 + nesting
			total += w.walkCaseClause(clause, nesting)
		case KindSwitchDefault:
			total += w.walkCaseClause(clause, nesting)
		default:
			total += w.walk(clause, nesting)
		}
	}
	return total
}

// walkCaseClause visits a case's match value at the current level and its
// statements one level deeper.
func (w *cognitiveWalker) walkCaseClause(clause *sitter.Node, nesting uint32) uint32 {
	value := clause.ChildByFieldName("value")
	var total uint32
	for i := range int(clause.NamedChildCount()) {
		child := clause.NamedChild(i)
		if sameNode(child, value) {
			total += w.walk(child, nesting)
		} else {
			total += w.walk(child, nesting+1)
		}
	}
	return total
}

func (w *cognitiveWalker) walkTry(n *sitter.Node, nesting uint32) uint32 {
	// The try block itself is free; only the catch clause is a branch.
	total := w.walk(n.ChildByFieldName("body"), nesting)

	if handler := n.ChildByFieldName("handler"); handler != nil {
		total += 1 + nesting
		total += w.walk(handler.ChildByFieldName("body"), nesting+1)
	}
	if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
		total += w.walkChildren(finalizer, nesting)
	}
	return total
}

func (w *cognitiveWalker) walkChildren(n *sitter.Node, nesting uint32) uint32 {
	var total uint32
	for i := range int(n.ChildCount()) {
		total += w.walk(n.Child(i), nesting)
	}
	return total
}

// walkChildrenExcept visits all children except one already handled at a
// different level.
func (w *cognitiveWalker) walkChildrenExcept(n *sitter.Node, nesting uint32, skip *sitter.Node) uint32 {
	var total uint32
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if sameNode(child, skip) {
			continue
		}
		total += w.walk(child, nesting)
	}
	return total
}
