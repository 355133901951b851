package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	server := NewServer("")
	if server == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"analyzeComponents": describeAnalyzeComponents,
		"rankComponents":    describeRankComponents,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			for _, section := range []string{"USE WHEN:", "INTERPRETING RESULTS:", "METRICS RETURNED:"} {
				if !strings.Contains(desc, section) {
					t.Errorf("%s description missing %s section", name, section)
				}
			}
		})
	}
}

func TestGetPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    AnalyzeInput
		expected []string
	}{
		{"empty paths defaults to current dir", AnalyzeInput{Paths: nil}, []string{"."}},
		{"empty slice defaults to current dir", AnalyzeInput{Paths: []string{}}, []string{"."}},
		{"single path returned as-is", AnalyzeInput{Paths: []string{"/foo/bar"}}, []string{"/foo/bar"}},
		{"multiple paths returned as-is", AnalyzeInput{Paths: []string{"/foo", "/bar"}}, []string{"/foo", "/bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getPaths(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("getPaths() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("getPaths()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestHandleAnalyzeComponents(t *testing.T) {
	tmpDir := t.TempDir()
	source := `export const Widget = ({ value }) => {
  return value ? <span>{value}</span> : null;
};
`
	if err := os.WriteFile(filepath.Join(tmpDir, "Widget.tsx"), []byte(source), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	result, _, err := handleAnalyzeComponents(context.Background(), &mcp.CallToolRequest{}, ComponentsInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{tmpDir}},
	})
	if err != nil {
		t.Fatalf("handleAnalyzeComponents() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handleAnalyzeComponents() returned tool error: %v", result.Content)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "Widget") {
		t.Errorf("tool output missing component name:\n%s", text)
	}
}

func TestHandleAnalyzeComponentsUnknownComponent(t *testing.T) {
	tmpDir := t.TempDir()
	source := "export const Widget = () => <div />;\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "Widget.tsx"), []byte(source), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	result, _, err := handleAnalyzeComponents(context.Background(), &mcp.CallToolRequest{}, ComponentsInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{tmpDir}},
		Component:    "Nope",
	})
	if err != nil {
		t.Fatalf("handleAnalyzeComponents() error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown component")
	}
}

func TestHandleRankComponentsTop(t *testing.T) {
	tmpDir := t.TempDir()
	files := map[string]string{
		"A.tsx": "export const Alpha = () => <div />;\n",
		"B.tsx": "export const Beta = ({ on }) => (on ? <div /> : <span />);\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	result, _, err := handleRankComponents(context.Background(), &mcp.CallToolRequest{}, RankInput{
		AnalyzeInput: AnalyzeInput{Paths: []string{tmpDir}, Format: "json"},
		Top:          1,
	})
	if err != nil {
		t.Fatalf("handleRankComponents() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handleRankComponents() returned tool error: %v", result.Content)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "risk_score") {
		t.Errorf("rank output missing risk_score:\n%s", text)
	}
}
