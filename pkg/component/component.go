// Package component models detected UI components and resolves references
// between them.
package component

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Prop describes a single declared component property.
type Prop struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// MarkupNode models the nested markup structure a component renders.
type MarkupNode struct {
	TagName  string        `json:"tag_name"`
	Props    []MarkupProp  `json:"props,omitempty"`
	Children []*MarkupNode `json:"children,omitempty"`
}

// MarkupProp is a name/type pair attached to a markup node.
type MarkupProp struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Summary is the structural description of one detected component.
// It is produced by extraction and treated as immutable by the metric
// engine: calculators only read it.
type Summary struct {
	Name      string   `json:"name"`
	FullPath  string   `json:"full_path"`
	Directory string   `json:"directory"`
	Imports   []string `json:"imports,omitempty"`
	Exports   []string `json:"exports,omitempty"`
	UsedBy    []string `json:"used_by,omitempty"`
	Functions []string `json:"functions,omitempty"`

	// FunctionCalls maps a scope name to the callees invoked from it.
	FunctionCalls map[string][]string `json:"function_calls,omitempty"`

	Props      []Prop      `json:"props,omitempty"`
	MarkupTree *MarkupNode `json:"markup_tree,omitempty"`

	// Content is the raw source text of the defining file. It is used only
	// for text-pattern global-coupling detection and line counting.
	Content string `json:"-"`
}

// Identity is a project-wide unique key for a component. Component names
// are not unique across files, so the key folds in the defining path.
type Identity string

// NewIdentity derives the stable identity for a component. The same
// name/path pair always produces the same key, and two components sharing
// a name in different files never collide.
func NewIdentity(name, fullPath string) Identity {
	return Identity(fmt.Sprintf("%s@%016x", name, xxhash.Sum64String(fullPath)))
}

// ID returns the summary's identity.
func (s *Summary) ID() Identity {
	return NewIdentity(s.Name, s.FullPath)
}

// Name extracts the component name portion of an identity.
func (id Identity) Name() string {
	if i := strings.LastIndex(string(id), "@"); i >= 0 {
		return string(id)[:i]
	}
	return string(id)
}

// Resolver resolves a raw import path or export name to a known component.
type Resolver interface {
	Resolve(importPathOrName string) (*Summary, bool)
}

// Registry indexes component summaries for lookup by name, path suffix,
// or export name.
type Registry struct {
	byName   map[string][]*Summary
	byExport map[string][]*Summary
	ordered  []*Summary
}

// NewRegistry builds a registry over the given summaries.
func NewRegistry(summaries []*Summary) *Registry {
	r := &Registry{
		byName:   make(map[string][]*Summary),
		byExport: make(map[string][]*Summary),
	}
	for _, s := range summaries {
		r.Add(s)
	}
	return r
}

// Add indexes one summary.
func (r *Registry) Add(s *Summary) {
	if s == nil || s.Name == "" {
		return
	}
	r.byName[s.Name] = append(r.byName[s.Name], s)
	for _, exp := range s.Exports {
		r.byExport[exp] = append(r.byExport[exp], s)
	}
	r.ordered = append(r.ordered, s)
}

// All returns every registered summary in insertion order.
func (r *Registry) All() []*Summary {
	return r.ordered
}

// Resolve maps an import path or bare name to a known component. Matching
// strategies are tried in priority order: direct name, path suffix, then
// export name. Returns false when nothing in the project matches.
func (r *Registry) Resolve(importPathOrName string) (*Summary, bool) {
	if importPathOrName == "" {
		return nil, false
	}

	if matches, ok := r.byName[importPathOrName]; ok && len(matches) > 0 {
		return matches[0], true
	}

	// Path-suffix match: "./components/Button" resolves to the component
	// whose path ends in Button with a source extension stripped.
	base := filepath.Base(importPathOrName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base != importPathOrName {
		if matches, ok := r.byName[base]; ok && len(matches) > 0 {
			for _, m := range matches {
				if pathMatchesImport(m.FullPath, importPathOrName) {
					return m, true
				}
			}
			return matches[0], true
		}
	}

	if matches, ok := r.byExport[importPathOrName]; ok && len(matches) > 0 {
		return matches[0], true
	}

	return nil, false
}

// pathMatchesImport reports whether a component's file path plausibly
// corresponds to a relative import specifier.
func pathMatchesImport(fullPath, spec string) bool {
	cleaned := strings.TrimPrefix(strings.TrimPrefix(spec, "./"), "../")
	for strings.HasPrefix(cleaned, "../") {
		cleaned = strings.TrimPrefix(cleaned, "../")
	}
	noExt := strings.TrimSuffix(fullPath, filepath.Ext(fullPath))
	return strings.HasSuffix(filepath.ToSlash(noExt), filepath.ToSlash(cleaned))
}
