package metrics

import (
	"github.com/prismlab/prism/pkg/component"
	"github.com/prismlab/prism/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// ClassifyNodes locates, in a single traversal, the syntax-tree node
// defining each of the expected component names. Three binding shapes are
// recognized: a named function declaration, a variable bound to a
// function-like expression, and a default-exported function, whether the
// grammar yields it as a declaration or an anonymous expression.
// A binding is accepted only when the definition passes the component
// shape heuristic (capitalized name, and a body that renders markup or
// calls hook-style APIs). Names with no match are simply absent from the
// returned map.
func ClassifyNodes(result *parser.ParseResult, names []string) map[string]*sitter.Node {
	bound := make(map[string]*sitter.Node, len(names))
	if result == nil || result.Tree == nil || len(names) == 0 {
		return bound
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	src := result.Source
	var anonymousDefault *sitter.Node

	bind := func(name string, node *sitter.Node) {
		if !wanted[name] || bound[name] != nil {
			return
		}
		if !isComponentShaped(name, node, src) {
			return
		}
		bound[name] = node
	}

	parser.WalkTyped(result.Tree.RootNode(), src, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "function_declaration", "generator_function_declaration":
			name := parser.GetNodeText(n.ChildByFieldName("name"), src)
			if name != "" {
				bind(name, n)
			} else if isDefaultExported(n) {
				anonymousDefault = n
			}
		case "variable_declarator":
			value := n.ChildByFieldName("value")
			if value != nil && isFunctionKind(value.Type()) {
				bind(parser.GetNodeText(n.ChildByFieldName("name"), src), n)
			}
		case "function_expression", "function", "generator_function", "arrow_function":
			// `export default function () {}` parses as an expression, not a
			// declaration, so the anonymous-default capture lives here too.
			if parser.GetNodeText(n.ChildByFieldName("name"), src) == "" && isDefaultExported(n) {
				anonymousDefault = n
			}
		}
		return true
	})

	// An anonymous `export default function` can only belong to a single
	// remaining expected component; with several unbound names the binding
	// would be a guess, so it stays absent.
	if anonymousDefault != nil {
		var unbound []string
		for _, n := range names {
			if bound[n] == nil {
				unbound = append(unbound, n)
			}
		}
		if len(unbound) == 1 && component.LooksLikeComponentBody(anonymousDefault, src) {
			bound[unbound[0]] = anonymousDefault
		}
	}

	return bound
}

// isComponentShaped applies the component-shape heuristic: the name starts
// uppercase and the body references markup or a hook-style call.
func isComponentShaped(name string, node *sitter.Node, src []byte) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	return component.LooksLikeComponentBody(node, src)
}

// isDefaultExported reports whether a declaration sits directly under an
// export statement carrying the "default" keyword.
func isDefaultExported(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != "export_statement" {
		return false
	}
	for i := range int(parent.ChildCount()) {
		if parent.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

// measurableNode returns the subtree the tree-based calculators should
// measure for a bound definition. Variable bindings measure the
// function-like initializer, not the declarator wrapper.
func measurableNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "variable_declarator" {
		if value := n.ChildByFieldName("value"); value != nil {
			return value
		}
	}
	return n
}
