// Package analysis wires scanning, component extraction, and metric
// computation into a single pipeline shared by the CLI and MCP server.
package analysis

import (
	"context"
	"sort"

	"github.com/prismlab/prism/internal/fileproc"
	"github.com/prismlab/prism/pkg/component"
	"github.com/prismlab/prism/pkg/config"
	"github.com/prismlab/prism/pkg/metrics"
	"github.com/prismlab/prism/pkg/parser"
	"github.com/prismlab/prism/pkg/report"
	"github.com/prismlab/prism/pkg/scanner"
)

// Service runs the analysis pipeline.
type Service struct {
	cfg *config.Config
}

// New creates an analysis service. A nil config uses the defaults.
func New(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{cfg: cfg}
}

// Run is the outcome of one pipeline invocation.
type Run struct {
	Components   []*component.Summary
	Metrics      *metrics.Result
	Report       *report.Report
	FilesScanned int
	Errors       *fileproc.ProcessingErrors
}

// AnalyzePaths scans the given roots, extracts components, and computes
// all metrics. Per-file parse failures are collected on the Run rather
// than aborting the pipeline.
func (s *Service) AnalyzePaths(ctx context.Context, paths []string, onProgress fileproc.ProgressFunc) (*Run, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	scan, errs, err := s.scanAll(ctx, paths, onProgress)
	if err != nil {
		return nil, err
	}

	// Extraction order follows sorted paths so identities and UsedBy
	// lists are stable across runs.
	sort.Strings(scan.FilePaths)

	components := make([]*component.Summary, 0, len(scan.FilePaths))
	for _, path := range scan.FilePaths {
		tree, ok := scan.Tree(path)
		if !ok {
			continue
		}
		components = append(components, component.ExtractFile(tree)...)
	}
	component.LinkUsedBy(components)

	registry := component.NewRegistry(components)
	engine := metrics.NewEngine(scan, registry)
	result, err := engine.Analyze(components)
	if err != nil {
		return nil, err
	}

	return &Run{
		Components:   components,
		Metrics:      result,
		Report:       report.Build(components, result),
		FilesScanned: len(scan.FilePaths),
		Errors:       errs,
	}, nil
}

// scanAll scans every root into one combined result.
func (s *Service) scanAll(ctx context.Context, paths []string, onProgress fileproc.ProgressFunc) (*scanner.Result, *fileproc.ProcessingErrors, error) {
	combined := &scanner.Result{
		SourceFiles:  make(map[string]*parser.ParseResult),
		FileContents: make(map[string]string),
		Digests:      make(map[string]string),
	}

	allErrs := &fileproc.ProcessingErrors{}
	for _, root := range paths {
		res, errs, err := scanner.New(s.cfg).ScanWithProgress(ctx, root, onProgress)
		if err != nil {
			return nil, nil, err
		}
		combined.FilePaths = append(combined.FilePaths, res.FilePaths...)
		for k, v := range res.SourceFiles {
			combined.SourceFiles[k] = v
		}
		for k, v := range res.FileContents {
			combined.FileContents[k] = v
		}
		for k, v := range res.Digests {
			combined.Digests[k] = v
		}
		if errs != nil {
			allErrs.Errors = append(allErrs.Errors, errs.Errors...)
		}
	}

	if !allErrs.HasErrors() {
		return combined, nil, nil
	}
	return combined, allErrs, nil
}
