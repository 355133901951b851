package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for prism.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Thresholds for highlighting risky components
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls which metric calculators run and how
// components are discovered.
type AnalysisConfig struct {
	Structural      bool     `koanf:"structural" toml:"structural"`
	Coupling        bool     `koanf:"coupling" toml:"coupling"`
	Cyclomatic      bool     `koanf:"cyclomatic" toml:"cyclomatic"`
	Cognitive       bool     `koanf:"cognitive" toml:"cognitive"`
	Maintainability bool     `koanf:"maintainability" toml:"maintainability"`
	Extensions      []string `koanf:"extensions" toml:"extensions"`
}

// ThresholdConfig defines metric thresholds. Values at or above a
// threshold (below, for maintainability) are flagged in reports.
type ThresholdConfig struct {
	StructuralComplexity float64 `koanf:"structural_complexity" toml:"structural_complexity"`
	CouplingDegree       float64 `koanf:"coupling_degree" toml:"coupling_degree"`
	CyclomaticComplexity int     `koanf:"cyclomatic_complexity" toml:"cyclomatic_complexity"`
	CognitiveComplexity  int     `koanf:"cognitive_complexity" toml:"cognitive_complexity"`
	MaintainabilityIndex float64 `koanf:"maintainability_index" toml:"maintainability_index"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, yaml, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Structural:      true,
			Coupling:        true,
			Cyclomatic:      true,
			Cognitive:       true,
			Maintainability: true,
			Extensions: []string{
				".tsx",
				".jsx",
				".ts",
				".js",
			},
		},
		Thresholds: ThresholdConfig{
			StructuralComplexity: 30,
			CouplingDegree:       0.75,
			CyclomaticComplexity: 10,
			CognitiveComplexity:  15,
			MaintainabilityIndex: 40,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.test.tsx",
				"*.test.ts",
				"*.test.jsx",
				"*.test.js",
				"*.spec.tsx",
				"*.spec.ts",
				"*.stories.tsx",
				"*.min.js",
				"*.d.ts",
			},
			Extensions: []string{
				".snap",
				".map",
			},
			Dirs: []string{
				"node_modules",
				".git",
				"dist",
				"build",
				"coverage",
				".next",
				".prism",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"prism.toml",
		"prism.yaml",
		"prism.yml",
		"prism.json",
		".prism.toml",
		".prism.yaml",
		".prism.yml",
		".prism.json",
	}

	searchDirs := []string{".", ".prism"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// ShouldAnalyze reports whether a file extension is in the analysis set.
func (c *Config) ShouldAnalyze(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Analysis.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
