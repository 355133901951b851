// Package scanner discovers and parses component source files.
package scanner

import (
	"context"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/prismlab/prism/internal/fileproc"
	"github.com/prismlab/prism/pkg/config"
	"github.com/prismlab/prism/pkg/parser"
	"github.com/zeebo/blake3"
)

// Scanner finds source files in a directory tree.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// New creates a file scanner. A nil config uses the defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// Result holds everything produced by a scan: the discovered paths,
// their parse trees, raw contents, and content digests. Trees are keyed
// by the same paths listed in FilePaths.
type Result struct {
	FilePaths    []string
	SourceFiles  map[string]*parser.ParseResult
	FileContents map[string]string
	Digests      map[string]string
}

// Tree returns the parse tree for a path, if the scan produced one.
func (r *Result) Tree(path string) (*parser.ParseResult, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.SourceFiles[path]
	return t, ok
}

// findGitRoot walks up from start looking for a .git directory.
// Returns empty string when not inside a repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config exclude patterns with the
// repository's .gitignore files when gitignore support is enabled.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	for _, dir := range s.config.Exclude.Dirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}

	if s.config.Exclude.Gitignore {
		gitRoot := findGitRoot(root)
		if gitRoot != "" {
			fs := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcluded checks if a path matches any exclusion pattern.
func (s *Scanner) isExcluded(path string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}

	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// ScanDir recursively scans a directory for analyzable source files.
// Validates that walked paths stay within the root to prevent symlink
// traversal outside the scanned tree.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 1024)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadExcludePatterns(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(relPath, false) || s.config.ShouldExclude(relPath) {
			return nil
		}
		if !s.config.ShouldAnalyze(path) {
			return nil
		}
		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}

		return nil
	})

	return files, walkErr
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	if !strings.HasPrefix(absPath, root+string(filepath.Separator)) && absPath != root {
		return false
	}

	return true
}

type parsedFile struct {
	path   string
	result *parser.ParseResult
	digest string
}

// Scan discovers source files under root and parses them in parallel.
// Files that fail to parse are dropped from the result; the collected
// errors are returned alongside so callers can report them.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, *fileproc.ProcessingErrors, error) {
	return s.ScanWithProgress(ctx, root, nil)
}

// ScanWithProgress is Scan with a per-file progress callback.
func (s *Scanner) ScanWithProgress(ctx context.Context, root string, onProgress fileproc.ProgressFunc) (*Result, *fileproc.ProcessingErrors, error) {
	paths, err := s.ScanDir(root)
	if err != nil {
		return nil, nil, err
	}

	parsed, errs := fileproc.MapFilesWithProgress(ctx, paths, func(p *parser.Parser, path string) (parsedFile, error) {
		result, err := p.ParseFile(path)
		if err != nil {
			return parsedFile{}, err
		}
		sum := blake3.Sum256(result.Source)
		return parsedFile{
			path:   path,
			result: result,
			digest: hex.EncodeToString(sum[:]),
		}, nil
	}, onProgress)

	res := &Result{
		FilePaths:    make([]string, 0, len(parsed)),
		SourceFiles:  make(map[string]*parser.ParseResult, len(parsed)),
		FileContents: make(map[string]string, len(parsed)),
		Digests:      make(map[string]string, len(parsed)),
	}
	for _, pf := range parsed {
		res.FilePaths = append(res.FilePaths, pf.path)
		res.SourceFiles[pf.path] = pf.result
		res.FileContents[pf.path] = string(pf.result.Source)
		res.Digests[pf.path] = pf.digest
	}

	return res, errs, nil
}
