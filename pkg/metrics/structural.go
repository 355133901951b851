package metrics

import (
	"math"
	"strings"

	"github.com/prismlab/prism/pkg/component"
)

// heavyMarkupTags are elements that carry intrinsic rendering complexity.
var heavyMarkupTags = map[string]bool{
	"table":  true,
	"form":   true,
	"svg":    true,
	"canvas": true,
	"video":  true,
	"audio":  true,
}

// StructuralComplexity scores a component from its structural summary
// alone; it never touches the syntax tree. Absent optional fields
// contribute zero. The result is rounded to one decimal.
func StructuralComplexity(s *component.Summary) float64 {
	if s == nil {
		return 0
	}

	score := float64(len(s.Imports) + len(s.UsedBy))
	score += float64(len(s.Exports)) * 0.5
	score += float64(len(s.Functions)) * 1.5

	var totalCalls int
	for _, callees := range s.FunctionCalls {
		totalCalls += len(callees)
	}
	score += float64(totalCalls) * 0.3

	for _, p := range s.Props {
		if p.Required {
			score += 1.2
		} else {
			score += 0.8
		}
	}

	score += markupScore(s.MarkupTree)

	if segments := pathSegmentCount(s.FullPath); segments > 4 {
		score += 0.2 * float64(segments-4)
	}

	dir := strings.ToLower(s.Directory)
	if strings.Contains(dir, "shared") || strings.Contains(dir, "common") || strings.Contains(dir, "utils") {
		score++
	}

	// Heavily depended-on components are penalized multiplicatively: a
	// change here ripples through every dependent.
	if used := len(s.UsedBy); used > 5 {
		score *= 1 + float64(used-5)*0.1
	}

	return math.Round(score*10) / 10
}

// markupScore walks the rendered markup tree, charging for structure and
// prop shape at every level.
func markupScore(node *component.MarkupNode) float64 {
	if node == nil {
		return 0
	}

	score := 1.0
	for _, p := range node.Props {
		score += 0.3
		switch {
		case isFunctionType(p.Type):
			score += 0.5
		case strings.Contains(p.Type, "|"):
			score += 0.3
		case strings.Contains(p.Type, "[]") || strings.Contains(p.Type, "Array<"):
			score += 0.2
		}
	}

	if extra := len(node.Children) - 3; extra > 0 {
		score += 0.2 * float64(extra)
	}

	tag := node.TagName
	if heavyMarkupTags[strings.ToLower(tag)] {
		score++
	}
	if tag != "" && tag[0] >= 'A' && tag[0] <= 'Z' {
		// A capitalized tag is a nested component, not a plain element.
		score += 0.5
	}

	for _, child := range node.Children {
		score += markupScore(child)
	}
	return score
}

func pathSegmentCount(path string) int {
	normalized := strings.ReplaceAll(path, "\\", "/")
	count := 0
	for _, seg := range strings.Split(normalized, "/") {
		if seg != "" {
			count++
		}
	}
	return count
}

func isFunctionType(typeText string) bool {
	t := strings.TrimSpace(typeText)
	return strings.Contains(t, "=>") ||
		strings.Contains(t, "function") ||
		strings.Contains(t, "Function") ||
		strings.HasPrefix(t, "Dispatch")
}
