package metrics

import (
	"math"
	"regexp"

	"github.com/prismlab/prism/pkg/component"
)

// Control-parameter naming conventions: event props, handler bindings, and
// callback-style names all carry control flow into the component.
var controlNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^on[A-Z]`),
	regexp.MustCompile(`^handle[A-Z]`),
	regexp.MustCompile(`Handler$`),
	regexp.MustCompile(`Callback$`),
	regexp.MustCompile(`Function$`),
}

var hookExportPattern = regexp.MustCompile(`^use[A-Z]`)

// Global data touches: reads/writes of ambient state.
var globalDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`process\.env`),
	regexp.MustCompile(`\bwindow\.`),
	regexp.MustCompile(`\bdocument\.`),
	regexp.MustCompile(`\blocalStorage\b`),
	regexp.MustCompile(`\bsessionStorage\b`),
	regexp.MustCompile(`\bglobalThis\b`),
}

// Global control touches: navigation, history, routing, store dispatch, and
// in-place list mutation.
var globalControlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bnavigate\s*\(`),
	regexp.MustCompile(`\buseNavigate\b`),
	regexp.MustCompile(`\bhistory\.(push|replace|go|back|forward)\b`),
	regexp.MustCompile(`\brouter\.(push|replace|back|reload)\b`),
	regexp.MustCompile(`\bdispatch\s*\(`),
	regexp.MustCompile(`\.(push|pop|shift|unshift|splice|sort|reverse)\s*\(`),
}

// couplingCounts collects the classified inputs to the coupling formula.
type couplingCounts struct {
	dataParams     int // di
	controlParams  int // ci
	dataExports    int // do
	controlExports int // co
	globalData     int // gd
	globalControl  int // gc
	fanIn          int // r
	fanOut         int // w
}

// CouplingDegree classifies a component's parameters, exports, and global
// touches and combines them with fan-in/fan-out in the classical design
// coupling formula:
//
//	C = 1 - 1/(di + 2*ci + do + 2*co + gd + 2*gc + w + r)
//
// Control-flow-carrying inputs weigh twice as heavily as data-carrying
// ones. A zero denominator yields 0. Rounded to two decimals.
func CouplingDegree(s *component.Summary, resolver component.Resolver) float64 {
	if s == nil {
		return 0
	}

	c := couplingCounts{fanIn: len(s.UsedBy)}

	for _, p := range s.Props {
		if isControlParam(p) {
			c.controlParams++
		} else {
			c.dataParams++
		}
	}

	declared := make(map[string]bool, len(s.Functions))
	for _, fn := range s.Functions {
		declared[fn] = true
	}
	for _, exp := range s.Exports {
		if isControlExport(exp, declared) {
			c.controlExports++
		} else {
			c.dataExports++
		}
	}

	c.globalData, c.globalControl = countGlobalTouches(s.Content)

	c.fanOut = FanOut(s, resolver)

	denominator := float64(c.dataParams + 2*c.controlParams +
		c.dataExports + 2*c.controlExports +
		c.globalData + 2*c.globalControl +
		c.fanOut + c.fanIn)
	if denominator == 0 {
		return 0
	}

	degree := 1 - 1/denominator
	if degree < 0 {
		degree = 0
	}
	return math.Round(degree*100) / 100
}

// isControlParam reports whether a prop carries control flow, by naming
// convention or by a function-denoting type.
func isControlParam(p component.Prop) bool {
	for _, pattern := range controlNamePatterns {
		if pattern.MatchString(p.Name) {
			return true
		}
	}
	return isFunctionType(p.Type)
}

// isControlExport classifies an export as control when it follows handler
// or hook naming, or names a function the component declares.
func isControlExport(name string, declaredFunctions map[string]bool) bool {
	for _, pattern := range controlNamePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	if hookExportPattern.MatchString(name) {
		return true
	}
	return declaredFunctions[name]
}

// countGlobalTouches scans raw source text for global data and control
// access patterns. An absent content field contributes zero.
func countGlobalTouches(content string) (data, control int) {
	if content == "" {
		return 0, 0
	}
	for _, pattern := range globalDataPatterns {
		data += len(pattern.FindAllStringIndex(content, -1))
	}
	for _, pattern := range globalControlPatterns {
		control += len(pattern.FindAllStringIndex(content, -1))
	}
	return data, control
}

// FanOut counts imports that resolve to other known project components.
func FanOut(s *component.Summary, resolver component.Resolver) int {
	if s == nil || resolver == nil {
		return 0
	}
	var n int
	for _, imp := range s.Imports {
		if target, ok := resolver.Resolve(imp); ok && target.ID() != s.ID() {
			n++
		}
	}
	return n
}
