package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const buttonSource = `import React from 'react';

export const Button = ({ label, onClick }) => {
  return <button onClick={onClick}>{label}</button>;
};
`

const pageSource = `import React from 'react';
import { Button } from './Button';

export const CheckoutPage = ({ items }) => {
  if (!items || items.length === 0) {
    return <div>Empty cart</div>;
  }
  return (
    <div>
      {items.map((item) => (
        <Button key={item.id} label={item.name} onClick={() => {}} />
      ))}
    </div>
  );
};
`

func writeProject(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	files := map[string]string{
		"src/Button.tsx":       buttonSource,
		"src/CheckoutPage.tsx": pageSource,
	}
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return tmpDir
}

func TestAnalyzePaths(t *testing.T) {
	root := writeProject(t)

	svc := New(nil)
	run, err := svc.AnalyzePaths(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("AnalyzePaths() error: %v", err)
	}
	if run.Errors != nil && run.Errors.HasErrors() {
		t.Fatalf("AnalyzePaths() file errors: %v", run.Errors)
	}

	if run.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", run.FilesScanned)
	}
	if len(run.Components) != 2 {
		t.Fatalf("found %d components, want 2", len(run.Components))
	}

	byName := make(map[string]int)
	for i, c := range run.Components {
		byName[c.Name] = i
	}
	for _, want := range []string{"Button", "CheckoutPage"} {
		if _, ok := byName[want]; !ok {
			t.Fatalf("component %s not extracted", want)
		}
	}

	button := run.Components[byName["Button"]]
	if len(button.UsedBy) != 1 || button.UsedBy[0] != "CheckoutPage" {
		t.Errorf("Button.UsedBy = %v, want [CheckoutPage]", button.UsedBy)
	}

	if run.Metrics.Len() != 2 {
		t.Errorf("metric entries = %d, want 2", run.Metrics.Len())
	}

	pageID := run.Components[byName["CheckoutPage"]].ID()
	if cyc := run.Metrics.CyclomaticComplexity[pageID]; cyc < 2 {
		t.Errorf("CheckoutPage cyclomatic = %d, want >= 2 (has branches)", cyc)
	}
	if run.Metrics.CognitiveComplexity[pageID] < 1 {
		t.Errorf("CheckoutPage cognitive should reflect its if statement")
	}

	if len(run.Report.Rows) != 2 {
		t.Fatalf("report rows = %d, want 2", len(run.Report.Rows))
	}
}

func TestAnalyzePathsDeterministic(t *testing.T) {
	root := writeProject(t)
	svc := New(nil)

	first, err := svc.AnalyzePaths(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("AnalyzePaths() error: %v", err)
	}
	second, err := svc.AnalyzePaths(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("AnalyzePaths() error: %v", err)
	}

	if len(first.Report.Rows) != len(second.Report.Rows) {
		t.Fatal("row counts differ between runs")
	}
	for i := range first.Report.Rows {
		a, b := first.Report.Rows[i], second.Report.Rows[i]
		if a.Identity != b.Identity || a.Risk != b.Risk {
			t.Errorf("row %d differs between runs: %v vs %v", i, a, b)
		}
	}
}

func TestAnalyzePathsEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()

	svc := New(nil)
	run, err := svc.AnalyzePaths(context.Background(), []string{tmpDir}, nil)
	if err != nil {
		t.Fatalf("AnalyzePaths() error: %v", err)
	}

	if run.FilesScanned != 0 {
		t.Errorf("FilesScanned = %d, want 0", run.FilesScanned)
	}
	if len(run.Components) != 0 {
		t.Errorf("components = %d, want 0", len(run.Components))
	}
	if run.Report.Summary.Components != 0 {
		t.Errorf("summary components = %d, want 0", run.Report.Summary.Components)
	}
}
