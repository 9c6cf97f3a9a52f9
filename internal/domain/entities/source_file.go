package entities

import (
	"path"
	"sort"
	"strings"
)

// JavaSourceFile is one scanned .java file.
type JavaSourceFile struct {
	// Path is relative to the project root, using forward slashes.
	Path string
	// ContentRoot is the source-tree root the file was found under
	// (e.g. "src/main/java").
	ContentRoot string
	Package     string
	Class       string
	Imports     []string
	IsTest      bool
	// UsesParameterizedRunner flags JUnit parameterized tests, which the
	// generated test rules cannot shard automatically.
	UsesParameterizedRunner bool
}

// FQCN returns the fully-qualified class name.
func (f *JavaSourceFile) FQCN() string {
	if f.Package == "" {
		return f.Class
	}
	return f.Package + "." + f.Class
}

// PackageSources groups the files of one Java package directory; each group
// becomes one generated build description file.
type PackageSources struct {
	Package     string
	Dir         string // relative to the project root
	ContentRoot string
	MainFiles   []*JavaSourceFile
	TestFiles   []*JavaSourceFile
}

// RuleName returns the name of the primary rule for this package,
// conventionally the last package segment.
func (ps *PackageSources) RuleName() string {
	if ps.Package == "" {
		return path.Base(ps.Dir)
	}
	segments := strings.Split(ps.Package, ".")
	return segments[len(segments)-1]
}

// Label returns the package's build label, e.g.
// "//src/main/java/com/acme/util:util".
func (ps *PackageSources) Label() string {
	return "//" + ps.Dir + ":" + ps.RuleName()
}

// SourceIndex is the scanned view of the project's Java sources: every file,
// grouped per package directory, plus the class ownership map used to
// resolve imports back to packages.
type SourceIndex struct {
	Files    []*JavaSourceFile
	Packages map[string]*PackageSources
	// ClassOwner maps a fully-qualified class name to its Java package.
	ClassOwner map[string]string
	// ContentRoots are the source-tree roots that were scanned, in order.
	ContentRoots []string
	// ResourceRoots are resource directories found next to content roots
	// (e.g. "src/test/resources").
	ResourceRoots []string
}

// ResolveClass resolves a fully-qualified class name to the package sources
// that own it, using the content roots to disambiguate (glossary: a content
// root is the directory prefix that maps a class name to a file path).
func (idx *SourceIndex) ResolveClass(fqcn string) (*PackageSources, bool) {
	pkg, ok := idx.ClassOwner[fqcn]
	if !ok {
		// A static import or nested-class import carries extra trailing
		// segments; retry on the parent.
		if i := strings.LastIndex(fqcn, "."); i > 0 {
			pkg, ok = idx.ClassOwner[fqcn[:i]]
		}
		if !ok {
			return nil, false
		}
	}

	ps, ok := idx.Packages[pkg]
	return ps, ok
}

// OwnsPackage reports whether the given Java package has sources in the
// project.
func (idx *SourceIndex) OwnsPackage(pkg string) bool {
	_, ok := idx.Packages[pkg]
	return ok
}

// SortedPackages returns the package groups in deterministic directory
// order.
func (idx *SourceIndex) SortedPackages() []*PackageSources {
	result := make([]*PackageSources, 0, len(idx.Packages))
	for _, ps := range idx.Packages {
		result = append(result, ps)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Dir < result[j].Dir })
	return result
}
