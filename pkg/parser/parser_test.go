package parser

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/App.tsx", LangTSX},
		{"src/Button.jsx", LangTSX},
		{"src/hooks/useAuth.ts", LangTypeScript},
		{"lib/config.mts", LangTypeScript},
		{"src/legacy/util.js", LangJavaScript},
		{"index.mjs", LangJavaScript},
		{"README.md", LangUnknown},
		{"styles.css", LangUnknown},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParse_TSX(t *testing.T) {
	code := `
export function App() {
  return <div className="app">hello</div>;
}
`
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte(code), LangTSX, "App.tsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Language != LangTSX {
		t.Errorf("Language = %q, want %q", result.Language, LangTSX)
	}

	jsx := FindNodesByType(result.Tree.RootNode(), result.Source, "jsx_element")
	if len(jsx) == 0 {
		t.Error("expected at least one jsx_element node")
	}

	fns := FindNodesByType(result.Tree.RootNode(), result.Source, "function_declaration")
	if len(fns) != 1 {
		t.Fatalf("len(function_declaration) = %d, want 1", len(fns))
	}
	if name := GetNodeText(fns[0].ChildByFieldName("name"), result.Source); name != "App" {
		t.Errorf("function name = %q, want App", name)
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "widget.tsx")

	code := `const Widget = () => <span>ok</span>;`
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	p := New()
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}
	if result.Tree == nil {
		t.Fatal("Tree is nil")
	}
}

func TestParseFile_UnsupportedLanguage(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(path, []byte("not code"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	p := New()
	defer p.Close()

	if _, err := p.ParseFile(path); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestWalk_StopsDescent(t *testing.T) {
	code := `function outer() { function inner() { return 1; } return inner(); }`
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte(code), LangJavaScript, "a.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var all, pruned int
	Walk(result.Tree.RootNode(), result.Source, func(n *sitter.Node, _ []byte) bool {
		all++
		return true
	})
	Walk(result.Tree.RootNode(), result.Source, func(n *sitter.Node, _ []byte) bool {
		pruned++
		// Stop at the top-level function body; nothing below it is visited.
		return n.Type() != "statement_block"
	})

	if pruned >= all {
		t.Errorf("pruned walk visited %d nodes, want fewer than %d", pruned, all)
	}
}
