package metrics

import (
	"math"
	"strings"

	"github.com/prismlab/prism/pkg/component"
	"github.com/prismlab/prism/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultMaintainability is the neutral fallback when no tree or node is
// available for a component.
const DefaultMaintainability float64 = 50

// controlFlowKeywords are counted as operators when their tokens appear.
var controlFlowKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "return": true,
	"break": true, "continue": true,
	"try": true, "catch": true, "finally": true, "throw": true,
	"new": true, "delete": true, "typeof": true, "instanceof": true,
	"in": true, "of": true, "void": true,
	"await": true, "async": true, "yield": true,
}

// operatorSymbols are token texts classified as operators.
var operatorSymbols = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"=": true, "==": true, "===": true, "!=": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "!": true, "??": true, "?.": true,
	"&": true, "|": true, "^": true, "~": true,
	"<<": true, ">>": true, ">>>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&&=": true, "||=": true, "??=": true,
	"++": true, "--": true,
	"?": true, ":": true,
	"=>": true,
	"...": true,
}

// HalsteadCounts holds operator/operand tallies for one component subtree.
type HalsteadCounts struct {
	DistinctOperators uint32 `json:"distinct_operators"` // n1
	DistinctOperands  uint32 `json:"distinct_operands"`  // n2
	TotalOperators    uint32 `json:"total_operators"`    // N1
	TotalOperands     uint32 `json:"total_operands"`     // N2
}

// Volume derives Halstead volume, floored at 1 so downstream logarithms
// stay defined.
func (h HalsteadCounts) Volume() float64 {
	vocabulary := float64(h.DistinctOperators + h.DistinctOperands)
	length := float64(h.TotalOperators + h.TotalOperands)
	if vocabulary <= 0 || length <= 0 {
		return 1
	}
	return math.Max(1, length*math.Log2(vocabulary))
}

// halsteadAcc threads the counting state through the traversal; nothing is
// shared between components.
type halsteadAcc struct {
	operators map[string]uint32
	operands  map[string]uint32
}

func (a *halsteadAcc) operator(token string) {
	a.operators[token]++
}

func (a *halsteadAcc) operand(token string) {
	a.operands[token]++
}

// CountHalstead traverses a component subtree once, classifying operator
// and operand tokens.
func CountHalstead(node *sitter.Node, src []byte) HalsteadCounts {
	node = measurableNode(node)
	if node == nil {
		return HalsteadCounts{}
	}

	acc := &halsteadAcc{
		operators: make(map[string]uint32),
		operands:  make(map[string]uint32),
	}
	acc.visit(node, src)

	counts := HalsteadCounts{
		DistinctOperators: uint32(len(acc.operators)),
		DistinctOperands:  uint32(len(acc.operands)),
	}
	for _, c := range acc.operators {
		counts.TotalOperators += c
	}
	for _, c := range acc.operands {
		counts.TotalOperands += c
	}
	return counts
}

func (a *halsteadAcc) visit(n *sitter.Node, src []byte) {
	if n == nil {
		return
	}

	if !n.IsNamed() {
		// Anonymous tokens carry the operator surface: punctuation and
		// control-flow keywords.
		text := n.Type()
		if operatorSymbols[text] || controlFlowKeywords[text] {
			a.operator(text)
		}
	} else {
		switch classify(n, src) {
		case KindCall:
			if name := calleeName(n, src); name != "" {
				a.operator(name + "()")
			}
		case KindMemberAccess:
			a.operator(".")
		case KindSubscript:
			a.operator("[]")
		case KindIdentifier:
			if !isDeclarationName(n) {
				a.operand(parser.GetNodeText(n, src))
			}
		case KindLiteral:
			a.operand(parser.GetNodeText(n, src))
		}
	}

	for i := range int(n.ChildCount()) {
		a.visit(n.Child(i), src)
	}
}

// calleeName resolves a call expression's callee to a bare name.
func calleeName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return parser.GetNodeText(fn, src)
	case "member_expression":
		return parser.GetNodeText(fn.ChildByFieldName("property"), src)
	default:
		return ""
	}
}

// isDeclarationName reports whether an identifier is the left side of a
// declaration (a binding, not a use).
func isDeclarationName(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "variable_declarator", "function_declaration",
		"generator_function_declaration", "method_definition",
		"required_parameter", "optional_parameter", "formal_parameters":
		name := parent.ChildByFieldName("name")
		return sameNode(name, n)
	}
	return false
}

// LineStats classifies the lines of a component's source span.
type LineStats struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
	Mixed   int `json:"mixed"`
}

// CountLines classifies a slice of source lines. A line with trailing `//`
// after non-empty code counts as code; documentation blocks (`/** ... */`)
// are ignorable: neither code nor comment.
func CountLines(lines []string) LineStats {
	var stats LineStats
	inBlock := false
	inDocBlock := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if inBlock {
			closed := strings.Contains(line, "*/")
			if !inDocBlock {
				stats.Comment++
			}
			if closed {
				rest := line[strings.Index(line, "*/")+2:]
				if strings.TrimSpace(rest) != "" {
					stats.Code++
					stats.Mixed++
					if !inDocBlock {
						stats.Comment-- // already counted as code
					}
				}
				inBlock = false
				inDocBlock = false
			}
			continue
		}

		switch {
		case line == "":
			stats.Blank++
		case strings.HasPrefix(line, "//"):
			stats.Comment++
		case strings.HasPrefix(line, "/**"):
			inDocBlock = !strings.Contains(line, "*/")
			inBlock = inDocBlock
		case strings.HasPrefix(line, "/*"):
			stats.Comment++
			inBlock = !strings.Contains(line, "*/")
		default:
			stats.Code++
			if strings.Contains(line, "//") || strings.Contains(line, "/*") {
				stats.Mixed++
			}
			if idx := strings.Index(line, "/*"); idx >= 0 && !strings.Contains(line[idx:], "*/") {
				inBlock = true
			}
		}
	}

	return stats
}

// componentLines returns the source lines spanned by the component's node.
func componentLines(node *sitter.Node, content string) []string {
	node = measurableNode(node)
	if node == nil || content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	start := int(node.StartPoint().Row)
	end := int(node.EndPoint().Row)
	if start < 0 || start >= len(lines) {
		return nil
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return lines[start : end+1]
}

// MaintainabilityIndex combines Halstead volume, cyclomatic complexity, and
// component-local code lines into a 0-100 score, then applies bounded
// heuristic penalties from the structural summary.
func MaintainabilityIndex(node *sitter.Node, src []byte, cyclomatic uint32, s *component.Summary) float64 {
	node = measurableNode(node)
	if node == nil {
		return DefaultMaintainability
	}

	counts := CountHalstead(node, src)
	volume := counts.Volume()

	content := ""
	if s != nil {
		content = s.Content
	}
	stats := CountLines(componentLines(node, content))
	loc := stats.Code
	if loc < 1 {
		loc = 1
	}

	mi := (171 - 5.2*math.Log(volume) - 0.23*float64(cyclomatic) - 16.2*math.Log(float64(loc))) * 100 / 171
	if mi < 0 {
		mi = 0
	}

	mi -= repetitionPenalty(counts)
	if s != nil {
		mi -= functionCountPenalty(len(s.Functions))
		mi -= connectionPenalty(len(s.Imports) + len(s.UsedBy))
	}

	mi = clamp(mi, 0, 100)
	return math.Round(mi*100) / 100
}

// repetitionPenalty subtracts up to 15 points when the operator/operand
// repetition ratio N/n exceeds 10.
func repetitionPenalty(h HalsteadCounts) float64 {
	distinct := float64(h.DistinctOperators + h.DistinctOperands)
	total := float64(h.TotalOperators + h.TotalOperands)
	if distinct <= 0 {
		return 0
	}
	ratio := total / distinct
	if ratio <= 10 {
		return 0
	}
	return clamp((ratio-10)*1.5, 0, 15)
}

// functionCountPenalty subtracts up to 10 points for components declaring
// more than 20 functions.
func functionCountPenalty(functionCount int) float64 {
	if functionCount <= 20 {
		return 0
	}
	return clamp(float64(functionCount-20)*0.5, 0, 10)
}

// connectionPenalty subtracts up to 8 points when direct connections
// (imports plus dependents) exceed 15.
func connectionPenalty(connections int) float64 {
	if connections <= 15 {
		return 0
	}
	return clamp(float64(connections-15)*0.4, 0, 8)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
