package component

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/prismlab/prism/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

var hookCallPattern = regexp.MustCompile(`^use[A-Z]\w*$`)

// ExtractFile derives component summaries from a parsed source file.
// One file can define several components; helpers and lowercase functions
// are recorded as file-scope functions but never become summaries.
func ExtractFile(result *parser.ParseResult) []*Summary {
	if result == nil || result.Tree == nil {
		return nil
	}

	root := result.Tree.RootNode()
	src := result.Source

	imports := extractImports(root, src)
	exports := extractExports(root, src)
	functions := extractFunctionNames(root, src)
	calls := extractFunctionCalls(root, src)

	var summaries []*Summary
	for _, cand := range componentCandidates(root, src) {
		s := &Summary{
			Name:          cand.name,
			FullPath:      result.Path,
			Directory:     filepath.Dir(result.Path),
			Imports:       imports,
			Exports:       exports,
			Functions:     functions,
			FunctionCalls: calls,
			Props:         extractProps(cand.node, root, src),
			MarkupTree:    extractMarkupTree(cand.node, src),
			Content:       string(src),
		}
		summaries = append(summaries, s)
	}

	return summaries
}

// LinkUsedBy cross-references summaries: every import that resolves to a
// known component records the importer on the target's UsedBy list.
func LinkUsedBy(summaries []*Summary) {
	registry := NewRegistry(summaries)
	for _, s := range summaries {
		for _, imp := range s.Imports {
			target, ok := registry.Resolve(imp)
			if !ok || target == s {
				continue
			}
			target.UsedBy = append(target.UsedBy, s.Name)
		}
	}
}

type candidate struct {
	name string
	node *sitter.Node
}

// componentCandidates finds definitions that look like UI components:
// capitalized name bound to a function whose body renders markup or calls
// hook-style APIs.
func componentCandidates(root *sitter.Node, src []byte) []candidate {
	var found []candidate
	seen := make(map[string]bool)

	add := func(name string, node *sitter.Node) {
		if name == "" || seen[name] || !isCapitalized(name) {
			return
		}
		if !LooksLikeComponentBody(node, src) {
			return
		}
		seen[name] = true
		found = append(found, candidate{name: name, node: node})
	}

	parser.WalkTyped(root, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "function_declaration":
			add(parser.GetNodeText(n.ChildByFieldName("name"), src), n)
		case "variable_declarator":
			value := n.ChildByFieldName("value")
			if value != nil && isFunctionLike(value.Type()) {
				add(parser.GetNodeText(n.ChildByFieldName("name"), src), n)
			}
		}
		return true
	})

	return found
}

// LooksLikeComponentBody reports whether a subtree renders markup or uses
// hook-style state APIs. Shared with the metric engine's node classifier.
func LooksLikeComponentBody(node *sitter.Node, src []byte) bool {
	found := false
	parser.WalkTyped(node, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		if found {
			return false
		}
		switch nodeType {
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			found = true
			return false
		case "call_expression":
			callee := n.ChildByFieldName("function")
			if callee != nil && callee.Type() == "identifier" &&
				hookCallPattern.MatchString(parser.GetNodeText(callee, src)) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func isCapitalized(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func isFunctionLike(nodeType string) bool {
	switch nodeType {
	case "arrow_function", "function", "function_expression", "generator_function":
		return true
	}
	return false
}

func extractImports(root *sitter.Node, src []byte) []string {
	var imports []string
	for _, n := range parser.FindNodesByType(root, src, "import_statement") {
		if source := n.ChildByFieldName("source"); source != nil {
			if spec := strings.Trim(parser.GetNodeText(source, src), "'\"`"); spec != "" {
				imports = append(imports, spec)
			}
		}
	}
	return imports
}

func extractExports(root *sitter.Node, src []byte) []string {
	var exports []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			exports = append(exports, name)
		}
	}

	for _, n := range parser.FindNodesByType(root, src, "export_statement") {
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			switch decl.Type() {
			case "function_declaration", "class_declaration", "generator_function_declaration":
				add(parser.GetNodeText(decl.ChildByFieldName("name"), src))
			case "lexical_declaration", "variable_declaration":
				for _, v := range parser.FindNodesByType(decl, src, "variable_declarator") {
					add(parser.GetNodeText(v.ChildByFieldName("name"), src))
				}
			}
		}
		// export { A, B as C }
		for _, spec := range parser.FindNodesByType(n, src, "export_specifier") {
			name := spec.ChildByFieldName("alias")
			if name == nil {
				name = spec.ChildByFieldName("name")
			}
			add(parser.GetNodeText(name, src))
		}
	}
	return exports
}

// extractFunctionNames collects named functions declared at any scope in the
// file, including consts bound to function-like expressions.
func extractFunctionNames(root *sitter.Node, src []byte) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	parser.WalkTyped(root, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "function_declaration", "generator_function_declaration":
			add(parser.GetNodeText(n.ChildByFieldName("name"), src))
		case "variable_declarator":
			if value := n.ChildByFieldName("value"); value != nil && isFunctionLike(value.Type()) {
				add(parser.GetNodeText(n.ChildByFieldName("name"), src))
			}
		}
		return true
	})
	return names
}

// extractFunctionCalls maps each named function to the callees invoked from
// its body.
func extractFunctionCalls(root *sitter.Node, src []byte) map[string][]string {
	calls := make(map[string][]string)

	record := func(name string, body *sitter.Node) {
		if name == "" || body == nil {
			return
		}
		var callees []string
		parser.WalkTyped(body, src, func(n *sitter.Node, nodeType string, src []byte) bool {
			if nodeType != "call_expression" {
				return true
			}
			callee := n.ChildByFieldName("function")
			if callee == nil {
				return true
			}
			switch callee.Type() {
			case "identifier":
				callees = append(callees, parser.GetNodeText(callee, src))
			case "member_expression":
				if prop := callee.ChildByFieldName("property"); prop != nil {
					callees = append(callees, parser.GetNodeText(prop, src))
				}
			}
			return true
		})
		if len(callees) > 0 {
			calls[name] = callees
		}
	}

	parser.WalkTyped(root, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "function_declaration", "generator_function_declaration":
			record(parser.GetNodeText(n.ChildByFieldName("name"), src), n.ChildByFieldName("body"))
		case "variable_declarator":
			if value := n.ChildByFieldName("value"); value != nil && isFunctionLike(value.Type()) {
				body := value.ChildByFieldName("body")
				record(parser.GetNodeText(n.ChildByFieldName("name"), src), body)
			}
		}
		return true
	})

	if len(calls) == 0 {
		return nil
	}
	return calls
}

// extractProps reads the component's declared props from its first
// parameter: a destructuring pattern, or a typed parameter backed by an
// interface/type literal in the same file.
func extractProps(defNode *sitter.Node, root *sitter.Node, src []byte) []Prop {
	fn := functionNodeOf(defNode)
	if fn == nil {
		return nil
	}

	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// Arrow functions with a single bare parameter.
		params = fn.ChildByFieldName("parameter")
	}
	if params == nil {
		return nil
	}

	var props []Prop

	// ({ title, onClick }: Props) or ({ title = "x" })
	for _, pat := range parser.FindNodesByType(params, src, "object_pattern") {
		for i := range int(pat.NamedChildCount()) {
			child := pat.NamedChild(i)
			switch child.Type() {
			case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
				props = append(props, Prop{Name: parser.GetNodeText(child, src), Type: "any", Required: true})
			case "object_assignment_pattern":
				if left := child.ChildByFieldName("left"); left != nil {
					props = append(props, Prop{Name: parser.GetNodeText(left, src), Type: "any", Required: false})
				}
			case "pair_pattern":
				if key := child.ChildByFieldName("key"); key != nil {
					props = append(props, Prop{Name: parser.GetNodeText(key, src), Type: "any", Required: true})
				}
			}
		}
	}

	// Enrich from a Props interface/type alias when the parameter is typed.
	typeName := parameterTypeName(params, src)
	if typeName != "" {
		if typed := propsFromTypeDeclaration(root, src, typeName); len(typed) > 0 {
			return mergeTypedProps(props, typed)
		}
	}

	return props
}

func functionNodeOf(defNode *sitter.Node) *sitter.Node {
	if defNode == nil {
		return nil
	}
	if defNode.Type() == "variable_declarator" {
		return defNode.ChildByFieldName("value")
	}
	return defNode
}

func parameterTypeName(params *sitter.Node, src []byte) string {
	for _, ann := range parser.FindNodesByType(params, src, "type_annotation") {
		for i := range int(ann.NamedChildCount()) {
			if t := ann.NamedChild(i); t.Type() == "type_identifier" {
				return parser.GetNodeText(t, src)
			}
		}
	}
	return ""
}

// propsFromTypeDeclaration reads property signatures off an interface or
// object type alias with the given name.
func propsFromTypeDeclaration(root *sitter.Node, src []byte, typeName string) []Prop {
	var body *sitter.Node

	parser.WalkTyped(root, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		if body != nil {
			return false
		}
		switch nodeType {
		case "interface_declaration":
			if parser.GetNodeText(n.ChildByFieldName("name"), src) == typeName {
				body = n.ChildByFieldName("body")
				return false
			}
		case "type_alias_declaration":
			if parser.GetNodeText(n.ChildByFieldName("name"), src) == typeName {
				body = n.ChildByFieldName("value")
				return false
			}
		}
		return true
	})

	if body == nil {
		return nil
	}

	var props []Prop
	for _, sig := range parser.FindNodesByType(body, src, "property_signature") {
		name := parser.GetNodeText(sig.ChildByFieldName("name"), src)
		if name == "" {
			continue
		}
		typeText := "any"
		if ann := sig.ChildByFieldName("type"); ann != nil {
			typeText = strings.TrimPrefix(parser.GetNodeText(ann, src), ": ")
			typeText = strings.TrimPrefix(typeText, ":")
			typeText = strings.TrimSpace(typeText)
		}
		required := true
		for i := range int(sig.ChildCount()) {
			if sig.Child(i).Type() == "?" {
				required = false
			}
		}
		props = append(props, Prop{Name: name, Type: typeText, Required: required})
	}
	return props
}

// mergeTypedProps prefers type-declaration entries but keeps destructured
// names the type omits.
func mergeTypedProps(destructured, typed []Prop) []Prop {
	have := make(map[string]bool, len(typed))
	for _, p := range typed {
		have[p.Name] = true
	}
	merged := typed
	for _, p := range destructured {
		if !have[p.Name] {
			merged = append(merged, p)
		}
	}
	return merged
}

// extractMarkupTree builds the nested markup model from the largest JSX
// subtree inside the component definition.
func extractMarkupTree(defNode *sitter.Node, src []byte) *MarkupNode {
	var rootJSX *sitter.Node
	parser.WalkTyped(defNode, src, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "jsx_element", "jsx_self_closing_element":
			rootJSX = n
			return false // The outermost element wins; children are nested under it.
		}
		return true
	})
	if rootJSX == nil {
		return nil
	}
	return buildMarkupNode(rootJSX, src)
}

func buildMarkupNode(n *sitter.Node, src []byte) *MarkupNode {
	node := &MarkupNode{}

	switch n.Type() {
	case "jsx_self_closing_element":
		node.TagName = parser.GetNodeText(n.ChildByFieldName("name"), src)
		node.Props = markupProps(n, src)
	case "jsx_element":
		if opening := firstChildOfType(n, "jsx_opening_element"); opening != nil {
			node.TagName = parser.GetNodeText(opening.ChildByFieldName("name"), src)
			node.Props = markupProps(opening, src)
		}
		for i := range int(n.NamedChildCount()) {
			child := n.NamedChild(i)
			switch child.Type() {
			case "jsx_element", "jsx_self_closing_element":
				node.Children = append(node.Children, buildMarkupNode(child, src))
			}
		}
	}

	return node
}

func markupProps(element *sitter.Node, src []byte) []MarkupProp {
	var props []MarkupProp
	for i := range int(element.NamedChildCount()) {
		attr := element.NamedChild(i)
		if attr.Type() != "jsx_attribute" {
			continue
		}
		name := ""
		if attr.NamedChildCount() > 0 {
			name = parser.GetNodeText(attr.NamedChild(0), src)
		}
		if name == "" {
			continue
		}
		props = append(props, MarkupProp{Name: name, Type: markupPropType(attr, name, src)})
	}
	return props
}

func markupPropType(attr *sitter.Node, name string, src []byte) string {
	if strings.HasPrefix(name, "on") && len(name) > 2 && name[2] >= 'A' && name[2] <= 'Z' {
		return "function"
	}
	for i := range int(attr.NamedChildCount()) {
		child := attr.NamedChild(i)
		if child.Type() != "jsx_expression" {
			continue
		}
		for j := range int(child.NamedChildCount()) {
			if isFunctionLike(child.NamedChild(j).Type()) {
				return "function"
			}
		}
		return "expression"
	}
	return "string"
}

func firstChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		if child := n.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}
