package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// stdlibPrefixes are import roots provided by the JDK; they never map to a
// dependency.
var stdlibPrefixes = []string{"java.", "javax.", "jdk.", "sun."}

// Fix is the interface for the fix command (dependency inference).
type Fix interface {
	Execute(ctx context.Context, settings *entities.Settings, opts FixOptions) (*FixResult, error)
}

// FixOptions holds runtime options for dependency inference.
type FixOptions struct {
	ProjectDir string
	DryRun     bool
	Verbose    bool
}

// FixResult summarizes an inference pass.
type FixResult struct {
	// PatchedPaths are project-relative paths of the build files the pass
	// changed.
	PatchedPaths []string
	ManualFixes  []entities.ManualFix
}

// FixCommand infers missing dependency declarations: it resolves every
// source file's imports against the project's own packages and the pinned
// third-party coordinates, then patches the deps lists of the generated
// build files. Nothing is ever removed from a deps list.
type FixCommand struct {
	sources    domainRepos.SourceRepository
	buildFiles domainRepos.BuildFileRepository
}

// NewFixCommand creates a new FixCommand.
func NewFixCommand(
	sources domainRepos.SourceRepository,
	buildFiles domainRepos.BuildFileRepository,
) *FixCommand {
	return &FixCommand{sources: sources, buildFiles: buildFiles}
}

// Execute runs one inference pass over all generated build files.
func (it *FixCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts FixOptions,
) (*FixResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	index, err := it.sources.Scan(ctx, opts.ProjectDir, settings.ContentRoots, settings.Excludes)
	if err != nil {
		return nil, err
	}

	pinPath := filepath.Join(opts.ProjectDir, settings.Output.ThirdPartyDir, PinFileName)
	pins, err := entities.LoadPinFile(pinPath)
	if err != nil {
		return nil, fmt.Errorf("dependency pins are required for inference: %w", err)
	}

	result := &FixResult{}
	for _, ps := range index.SortedPackages() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if fixErr := it.fixPackage(ps, index, pins, settings, opts, result); fixErr != nil {
			return nil, fixErr
		}
	}

	logger.Infof(
		"[fix] Patched %d build file(s), %d import(s) need manual attention",
		len(result.PatchedPaths), len(result.ManualFixes),
	)
	return result, nil
}

// runtimePinLabels returns the labels of runtime-scoped pins. They have no
// compile-time imports to infer from, so they are attached wholesale to the
// runtime classpath of deployable rules.
func runtimePinLabels(pins *entities.PinFile, thirdPartyDir string) []string {
	var labels []string
	for _, pin := range pins.Dependencies {
		if !pin.IsRuntime() {
			continue
		}
		coord, err := pin.Coord()
		if err != nil {
			continue
		}
		labels = append(labels, coord.ThirdPartyLabel(thirdPartyDir))
	}
	return labels
}

// fixPackage patches one package's build file.
func (it *FixCommand) fixPackage(
	ps *entities.PackageSources,
	index *entities.SourceIndex,
	pins *entities.PinFile,
	settings *entities.Settings,
	opts FixOptions,
	result *FixResult,
) error {
	path := filepath.Join(opts.ProjectDir, ps.Dir, buildFileName)
	if !it.buildFiles.Exists(path) {
		logger.Debugf("[fix] No build file for %s, skipping", ps.Package)
		return nil
	}

	file, err := it.buildFiles.Parse(path)
	if err != nil {
		logger.Warnf("[fix] Skipping unparseable build file %s: %v", path, err)
		return nil
	}

	changed := false
	if rule, ok := file.Rule(ps.RuleName()); ok {
		deps, runtimeDeps := it.resolveImports(ps, ps.MainFiles, index, pins, settings, result)
		changed = rule.AddDeps(deps...) || changed
		changed = rule.AddRuntimeDeps(runtimeDeps...) || changed
	}
	if rule, ok := file.Rule(ps.RuleName() + "_tests"); ok {
		deps, runtimeDeps := it.resolveImports(ps, ps.TestFiles, index, pins, settings, result)
		// Test sources compile against the package's production code.
		if len(ps.MainFiles) > 0 {
			deps = append(deps, ":"+ps.RuleName())
		}
		changed = rule.AddDeps(deps...) || changed
		changed = rule.AddRuntimeDeps(runtimeDeps...) || changed
	}
	// Runtime-scoped pins never show up in imports; the deployable's
	// runtime classpath carries them.
	for _, rule := range file.Rules {
		if rule.Kind == "java_binary" {
			labels := runtimePinLabels(pins, settings.Output.ThirdPartyDir)
			changed = rule.AddRuntimeDeps(labels...) || changed
		}
	}

	if !changed {
		return nil
	}

	relPath := filepath.ToSlash(filepath.Join(ps.Dir, buildFileName))
	if opts.DryRun {
		diff, diffErr := it.buildFiles.Preview(file)
		if diffErr != nil {
			return diffErr
		}
		logger.Infof("[fix] [DRY RUN] %s:\n%s", path, diff)
		result.PatchedPaths = append(result.PatchedPaths, relPath)
		return nil
	}

	if saveErr := it.buildFiles.Save(file); saveErr != nil {
		return saveErr
	}
	result.PatchedPaths = append(result.PatchedPaths, relPath)
	logger.Debugf("[fix] Patched %s", path)
	return nil
}

// resolveImports maps the imports of the given files to build labels, split
// by the attribute they belong in: compile-time deps and runtime_deps for
// labels backed by runtime-scoped pins.
func (it *FixCommand) resolveImports(
	ps *entities.PackageSources,
	files []*entities.JavaSourceFile,
	index *entities.SourceIndex,
	pins *entities.PinFile,
	settings *entities.Settings,
	result *FixResult,
) (deps, runtimeDeps []string) {
	for _, f := range files {
		for _, imp := range f.Imports {
			label, runtime, ok := it.resolveImport(imp, ps, index, pins, settings)
			if ok {
				switch {
				case label == "":
				case runtime:
					runtimeDeps = append(runtimeDeps, label)
				default:
					deps = append(deps, label)
				}
				continue
			}
			result.ManualFixes = append(result.ManualFixes, entities.ManualFix{
				Category: entities.FixUnresolvedImport,
				Path:     f.Path,
				Detail:   fmt.Sprintf("import %s matches no project package or pinned artifact", imp),
			})
		}
	}
	return deps, runtimeDeps
}

// resolveImport resolves one import. The returned label is empty (with
// ok=true) when the import needs no dependency edge: JDK classes, test
// framework classes covered by the runner, and same-package classes. The
// runtime flag is set when the matching pin is runtime-scoped.
func (it *FixCommand) resolveImport(
	imp string,
	ps *entities.PackageSources,
	index *entities.SourceIndex,
	pins *entities.PinFile,
	settings *entities.Settings,
) (label string, runtime, ok bool) {
	for _, prefix := range stdlibPrefixes {
		if strings.HasPrefix(imp, prefix) {
			return "", false, true
		}
	}

	if owner, found := index.ResolveClass(imp); found {
		if owner.Package == ps.Package {
			return "", false, true
		}
		return owner.Label(), false, true
	}

	if pin, found := pins.MatchImport(imp); found {
		coord, err := pin.Coord()
		if err != nil {
			return "", false, false
		}
		return coord.ThirdPartyLabel(settings.Output.ThirdPartyDir), pin.IsRuntime(), true
	}

	return "", false, false
}
