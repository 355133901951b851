package metrics

import (
	"testing"

	"github.com/prismlab/prism/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// parseTSX parses a snippet as TSX for calculator tests.
func parseTSX(t *testing.T, src string) *parser.ParseResult {
	t.Helper()
	p := parser.New()
	t.Cleanup(p.Close)

	result, err := p.Parse([]byte(src), parser.LangTSX, "test.tsx")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.Tree.RootNode().HasError() {
		t.Fatalf("test source does not parse cleanly:\n%s", src)
	}
	return result
}

// boundNode classifies a source file and returns the defining node for the
// named component.
func boundNode(t *testing.T, src, name string) (*sitter.Node, []byte) {
	t.Helper()
	result := parseTSX(t, src)
	nodes := ClassifyNodes(result, []string{name})
	node, ok := nodes[name]
	if !ok || node == nil {
		t.Fatalf("component %s was not bound to a node", name)
	}
	return node, result.Source
}
