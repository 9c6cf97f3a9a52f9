package entities

import (
	"fmt"
	"strings"
)

// FixCategory classifies a migration problem that cannot be resolved
// automatically and needs a human.
type FixCategory string

const (
	// FixMissingTestResource flags a test that failed because a resource
	// file was not carried over into the generated rules.
	FixMissingTestResource FixCategory = "missing-test-resource"
	// FixParameterizedRunner flags a JUnit parameterized test, which the
	// generated per-class test rules cannot run unmodified.
	FixParameterizedRunner FixCategory = "parameterized-runner"
	// FixUnresolvedImport flags an import that matched neither a project
	// package nor a pinned third-party coordinate.
	FixUnresolvedImport FixCategory = "unresolved-import"
	// FixToolFailure flags a build engine failure outside the known
	// categories.
	FixToolFailure FixCategory = "tool-failure"
)

// ManualFix is one item of the migration's to-do list for humans.
type ManualFix struct {
	Category FixCategory
	Path     string
	Detail   string
}

// MigrationReport is the machine-readable outcome of a migration run.
type MigrationReport struct {
	ModulesMigrated    int
	BuildFilesWritten  int
	DependenciesPinned int
	BuildPassed        bool
	TestsPassed        bool
	Branch             string
	Commit             string
	ManualFixes        []ManualFix
}

// Add appends a manual-fix item, deduplicating exact repeats.
func (r *MigrationReport) Add(category FixCategory, path, detail string) {
	for _, f := range r.ManualFixes {
		if f.Category == category && f.Path == path && f.Detail == detail {
			return
		}
	}
	r.ManualFixes = append(r.ManualFixes, ManualFix{Category: category, Path: path, Detail: detail})
}

// Summary renders a human-readable report for the CLI.
func (r *MigrationReport) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Modules migrated:     %d\n", r.ModulesMigrated)
	fmt.Fprintf(&b, "Build files written:  %d\n", r.BuildFilesWritten)
	fmt.Fprintf(&b, "Dependencies pinned:  %d\n", r.DependenciesPinned)
	fmt.Fprintf(&b, "Build passed:         %v\n", r.BuildPassed)
	fmt.Fprintf(&b, "Tests passed:         %v\n", r.TestsPassed)
	if r.Branch != "" {
		fmt.Fprintf(&b, "Branch:               %s\n", r.Branch)
	}
	if r.Commit != "" {
		fmt.Fprintf(&b, "Commit:               %s\n", r.Commit)
	}

	if len(r.ManualFixes) > 0 {
		fmt.Fprintf(&b, "\nManual fixes required (%d):\n", len(r.ManualFixes))
		for _, f := range r.ManualFixes {
			if f.Path != "" {
				fmt.Fprintf(&b, "  [%s] %s: %s\n", f.Category, f.Path, f.Detail)
			} else {
				fmt.Fprintf(&b, "  [%s] %s\n", f.Category, f.Detail)
			}
		}
	}

	return b.String()
}

// ToolResult is the captured outcome of one build engine invocation.
type ToolResult struct {
	Succeeded bool
	Output    string
}
