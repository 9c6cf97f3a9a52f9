package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/bazelize/internal/infrastructure/repositories"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/bazel"
)

const buildFileName = "BUILD.bazel"

// Init is the interface for the init command (skeleton generation).
type Init interface {
	Execute(ctx context.Context, settings *entities.Settings, opts InitOptions) (*InitResult, error)
}

// InitOptions holds runtime options for skeleton generation.
type InitOptions struct {
	ProjectDir string
	DryRun     bool
	Verbose    bool
}

// InitResult lists what the generation produced.
type InitResult struct {
	// WrittenFiles are project-relative paths of generated files.
	WrittenFiles []string
	// SkippedExisting counts build files left alone because a hand-edited
	// rule of the same name already existed.
	SkippedExisting int
}

// InitCommand writes the workspace files and one skeleton build
// description file per Java package directory: source globs, an empty deps
// list, and test rules per test class. Existing build files are merged,
// never clobbered.
type InitCommand struct {
	projects        domainRepos.ProjectRepository
	sources         domainRepos.SourceRepository
	buildFiles      domainRepos.BuildFileRepository
	ruleRegistry    *infraRepos.RuleRegistry
	workspaceWriter *bazel.WorkspaceWriter
}

// NewInitCommand creates a new InitCommand.
func NewInitCommand(
	projects domainRepos.ProjectRepository,
	sources domainRepos.SourceRepository,
	buildFiles domainRepos.BuildFileRepository,
	ruleRegistry *infraRepos.RuleRegistry,
	workspaceWriter *bazel.WorkspaceWriter,
) *InitCommand {
	return &InitCommand{
		projects:        projects,
		sources:         sources,
		buildFiles:      buildFiles,
		ruleRegistry:    ruleRegistry,
		workspaceWriter: workspaceWriter,
	}
}

// Execute generates the workspace and skeleton build files.
func (it *InitCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts InitOptions,
) (*InitResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if !it.projects.Detect(opts.ProjectDir) {
		return nil, fmt.Errorf("no pom.xml found in %s — not a Maven project", opts.ProjectDir)
	}

	index, err := it.sources.Scan(ctx, opts.ProjectDir, settings.ContentRoots, settings.Excludes)
	if err != nil {
		return nil, err
	}

	pins := it.loadPins(settings, opts.ProjectDir)
	result := &InitResult{}

	// Workspace-level files first, so package build files always land in
	// a declared workspace.
	if opts.DryRun {
		logger.Info("[init] [DRY RUN] Would write workspace files")
	} else {
		written, writeErr := it.workspaceWriter.WriteAll(opts.ProjectDir, settings, pins)
		if writeErr != nil {
			return nil, writeErr
		}
		result.WrittenFiles = append(result.WrittenFiles, written...)
	}

	genCtx := bazel.GenerateContext{
		ThirdPartyDir:      settings.Output.ThirdPartyDir,
		TestResourceLabels: it.writeResourceRules(index, opts, result),
	}

	for _, ps := range index.SortedPackages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := &entities.BuildFile{
			Path: filepath.Join(opts.ProjectDir, ps.Dir, buildFileName),
		}
		for _, gen := range it.ruleRegistry.All() {
			if gen.Applies(ps) {
				gen.Generate(file, ps, genCtx)
			}
		}
		if len(file.Rules) == 0 {
			continue
		}

		wrote, mergeErr := it.writeOrMerge(file, ps, opts)
		if mergeErr != nil {
			return nil, mergeErr
		}
		if wrote {
			result.WrittenFiles = append(result.WrittenFiles, filepath.ToSlash(
				filepath.Join(ps.Dir, buildFileName)))
		} else {
			result.SkippedExisting++
		}
	}

	logger.Infof(
		"[init] Wrote %d file(s), %d existing build file(s) kept",
		len(result.WrittenFiles), result.SkippedExisting,
	)
	return result, nil
}

// writeOrMerge writes the generated file, merging with any existing one:
// rules whose names already exist on disk win over generated skeletons.
func (it *InitCommand) writeOrMerge(
	file *entities.BuildFile,
	ps *entities.PackageSources,
	opts InitOptions,
) (bool, error) {
	if it.buildFiles.Exists(file.Path) {
		existing, parseErr := it.buildFiles.Parse(file.Path)
		if parseErr != nil {
			logger.Warnf("[init] Keeping unparseable build file %s: %v", file.Path, parseErr)
			return false, nil
		}

		merged := mergeBuildFiles(existing, file)
		if !merged {
			return false, nil
		}
		file = existing
	}

	if opts.DryRun {
		diff, diffErr := it.buildFiles.Preview(file)
		if diffErr != nil {
			return false, diffErr
		}
		if diff != "" {
			logger.Infof("[init] [DRY RUN] %s:\n%s", file.Path, diff)
		}
		return diff != "", nil
	}

	if saveErr := it.buildFiles.Save(file); saveErr != nil {
		return false, saveErr
	}
	logger.Debugf("[init] Wrote %s (%s)", file.Path, ps.Package)
	return true, nil
}

// writeResourceRules emits a resources library per test-resource root and
// returns the labels keyed by the module each root belongs to, so test
// rules only depend on their own module's resources.
func (it *InitCommand) writeResourceRules(
	index *entities.SourceIndex,
	opts InitOptions,
	result *InitResult,
) map[string]string {
	labels := make(map[string]string)
	for _, root := range index.ResourceRoots {
		if !strings.Contains(root, "/test/") {
			continue
		}

		file := &entities.BuildFile{
			Path: filepath.Join(opts.ProjectDir, root, buildFileName),
		}
		file.EnsureLoad("@rules_java//java:defs.bzl", "java_library")
		file.Rules = append(file.Rules, &entities.BuildRule{
			Kind: "java_library",
			Name: "resources",
			Attrs: []entities.Attr{
				entities.GlobAttr("resources", "**"),
				entities.BoolAttr("testonly", true),
				entities.ListAttr("visibility", "//visibility:public"),
			},
		})

		if opts.DryRun {
			logger.Infof("[init] [DRY RUN] Would write %s", file.Path)
		} else if err := it.buildFiles.Save(file); err != nil {
			logger.Warnf("[init] Failed to write %s: %v", file.Path, err)
			continue
		} else {
			result.WrittenFiles = append(result.WrittenFiles,
				filepath.ToSlash(filepath.Join(root, buildFileName)))
		}
		labels[modulePrefix(root)] = "//" + root + ":resources"
	}
	return labels
}

// modulePrefix returns the module directory prefix of a content or resource
// root, e.g. "core/" for "core/src/test/resources" and "" for the root
// module's "src/test/resources".
func modulePrefix(root string) string {
	if idx := strings.Index(root, "src/"); idx > 0 {
		return root[:idx]
	}
	return ""
}

// loadPins reads the dependency-declaration file, degrading to an empty
// pin set when the deps step has not run yet.
func (it *InitCommand) loadPins(settings *entities.Settings, projectDir string) *entities.PinFile {
	path := filepath.Join(projectDir, settings.Output.ThirdPartyDir, PinFileName)
	pins, err := entities.LoadPinFile(path)
	if err != nil {
		logger.Warnf("[init] No dependency pins (%v) — run the deps step first", err)
		return &entities.PinFile{}
	}
	return pins
}

// mergeBuildFiles adds generated rules missing from the existing file and
// reports whether anything changed.
func mergeBuildFiles(existing, generated *entities.BuildFile) bool {
	changed := false

	for _, l := range generated.Loads {
		before := countLoadSymbols(existing)
		existing.EnsureLoad(l.Module, l.Symbols...)
		if countLoadSymbols(existing) != before {
			changed = true
		}
	}

	for _, rule := range generated.Rules {
		if _, ok := existing.Rule(rule.Name); ok {
			continue
		}
		existing.Rules = append(existing.Rules, rule)
		changed = true
	}
	return changed
}

func countLoadSymbols(file *entities.BuildFile) int {
	n := 0
	for _, l := range file.Loads {
		n += len(l.Symbols)
	}
	return n
}
