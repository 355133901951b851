// Package metrics computes per-component software quality metrics from
// parsed syntax trees: structural complexity, coupling degree, cyclomatic
// complexity, cognitive complexity, and a maintainability index. All five
// are derived from a single traversal per source file.
package metrics

import (
	"github.com/prismlab/prism/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// NodeKind is a closed classification of syntax-tree nodes. Every
// calculator is an exhaustive fold over this union instead of matching raw
// grammar type strings in each walk.
type NodeKind uint8

const (
	KindOther NodeKind = iota
	KindIf
	KindElse
	KindTernary
	KindLoop
	KindSwitch
	KindSwitchCase
	KindSwitchDefault
	KindTry
	KindCatch
	KindFinally
	KindLogicalAnd
	KindLogicalOr
	KindNullish
	KindOptionalChain
	KindBinaryOther
	KindUnary
	KindCall
	KindMemberAccess
	KindSubscript
	KindFunction
	KindJSXExpression
	KindJSXElement
	KindIdentifier
	KindLiteral
	KindDeclaratorName
)

// classify maps a tree-sitter node to its NodeKind. Binary expressions need
// the operator token inspected, which is why source text is required.
func classify(n *sitter.Node, src []byte) NodeKind {
	switch n.Type() {
	case "if_statement":
		return KindIf
	case "else_clause":
		return KindElse
	case "ternary_expression":
		return KindTernary
	case "for_statement", "for_in_statement", "while_statement", "do_statement":
		return KindLoop
	case "switch_statement":
		return KindSwitch
	case "switch_case":
		return KindSwitchCase
	case "switch_default":
		return KindSwitchDefault
	case "try_statement":
		return KindTry
	case "catch_clause":
		return KindCatch
	case "finally_clause":
		return KindFinally
	case "binary_expression":
		switch binaryOperator(n, src) {
		case "&&":
			return KindLogicalAnd
		case "||":
			return KindLogicalOr
		case "??":
			return KindNullish
		default:
			return KindBinaryOther
		}
	case "optional_chain":
		// The grammar also emits an unnamed "?." token for each operator;
		// classifying it too would charge every chain twice.
		return KindOptionalChain
	case "unary_expression", "update_expression":
		return KindUnary
	case "call_expression":
		return KindCall
	case "member_expression":
		return KindMemberAccess
	case "subscript_expression":
		return KindSubscript
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "generator_function",
		"arrow_function", "method_definition":
		return KindFunction
	case "jsx_expression":
		return KindJSXExpression
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return KindJSXElement
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"type_identifier":
		return KindIdentifier
	case "string", "number", "true", "false", "null", "undefined",
		"template_string", "string_fragment", "regex":
		return KindLiteral
	default:
		return KindOther
	}
}

// binaryOperator returns the operator token text of a binary expression.
func binaryOperator(n *sitter.Node, src []byte) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return parser.GetNodeText(op, src)
	}
	// Older grammars expose the operator as an anonymous middle child.
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if !child.IsNamed() {
			return child.Type()
		}
	}
	return ""
}

// isFunctionKind reports whether a raw node type is function-like. Used by
// walks that must decide before classification whether to descend.
func isFunctionKind(nodeType string) bool {
	switch nodeType {
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

// sameNode reports whether two nodes cover the same source span. Node
// handles from repeated child lookups are not pointer-comparable.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// markupConditional reports whether a jsx_expression directly wraps a
// conditional-rendering pattern: a short-circuit logical operator or a
// ternary.
func markupConditional(n *sitter.Node, src []byte) bool {
	for i := range int(n.NamedChildCount()) {
		switch classify(n.NamedChild(i), src) {
		case KindLogicalAnd, KindLogicalOr, KindTernary:
			return true
		}
	}
	return false
}
