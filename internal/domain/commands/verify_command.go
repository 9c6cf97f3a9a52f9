package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/bazelize/internal/infrastructure/repositories"
)

// Verify is the interface for the verify command (build and test run).
type Verify interface {
	Execute(ctx context.Context, settings *entities.Settings, opts VerifyOptions) (*VerifyResult, error)
}

// VerifyOptions holds runtime options for verification.
type VerifyOptions struct {
	ProjectDir string
	SkipTests  bool
	Verbose    bool
}

// VerifyResult is the outcome of one verification run.
type VerifyResult struct {
	EngineVersion string
	BuildPassed   bool
	TestsPassed   bool
	ManualFixes   []entities.ManualFix
}

// VerifyCommand runs the build engine over the generated files and turns
// failures into actionable manual-fix items where the output matches a
// known migration gap.
type VerifyCommand struct {
	sources          domainRepos.SourceRepository
	toolchainFactory infraRepos.ToolchainFactory
}

// NewVerifyCommand creates a new VerifyCommand.
func NewVerifyCommand(
	sources domainRepos.SourceRepository,
	toolchainFactory infraRepos.ToolchainFactory,
) *VerifyCommand {
	return &VerifyCommand{sources: sources, toolchainFactory: toolchainFactory}
}

// Execute checks the engine version, builds all targets, and runs the
// tests unless skipped.
func (it *VerifyCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts VerifyOptions,
) (*VerifyResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	toolchain := it.toolchainFactory(settings.Toolchain)

	version, err := toolchain.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("build engine check failed: %w", err)
	}
	logger.Infof("[verify] Using %s %s", settings.Toolchain.Binary, version)

	result := &VerifyResult{EngineVersion: version}

	build, err := toolchain.Build(ctx, opts.ProjectDir, "//...")
	if err != nil {
		return nil, err
	}
	result.BuildPassed = build.Succeeded
	if !build.Succeeded {
		logger.Warn("[verify] Build failed")
		it.classifyFailure(build.Output, result)
		return result, nil
	}
	logger.Info("[verify] Build passed")

	if opts.SkipTests {
		logger.Info("[verify] Skipping tests")
		return result, nil
	}

	it.flagParameterizedTests(ctx, settings, opts, result)

	test, err := toolchain.Test(ctx, opts.ProjectDir, "//...")
	if err != nil {
		return nil, err
	}
	result.TestsPassed = test.Succeeded
	if !test.Succeeded {
		logger.Warn("[verify] Tests failed")
		it.classifyFailure(test.Output, result)
		return result, nil
	}
	logger.Info("[verify] Tests passed")

	return result, nil
}

// classifyFailure maps engine output to known migration gaps. Anything
// unrecognized becomes a generic tool-failure item carrying the last
// lines of output.
func (it *VerifyCommand) classifyFailure(output string, result *VerifyResult) {
	matched := false
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.Contains(line, "FileNotFoundException"),
			strings.Contains(line, "resource") && strings.Contains(line, "not found"):
			result.ManualFixes = append(result.ManualFixes, entities.ManualFix{
				Category: entities.FixMissingTestResource,
				Detail:   strings.TrimSpace(line),
			})
			matched = true
		case strings.Contains(line, "Parameterized"):
			result.ManualFixes = append(result.ManualFixes, entities.ManualFix{
				Category: entities.FixParameterizedRunner,
				Detail:   strings.TrimSpace(line),
			})
			matched = true
		}
	}

	if !matched {
		result.ManualFixes = append(result.ManualFixes, entities.ManualFix{
			Category: entities.FixToolFailure,
			Detail:   tailLines(output, 20),
		})
	}
}

// flagParameterizedTests warns about parameterized runners up front; the
// generated per-class test rules run them as plain JUnit classes, which
// silently drops the parameter sets.
func (it *VerifyCommand) flagParameterizedTests(
	ctx context.Context,
	settings *entities.Settings,
	opts VerifyOptions,
	result *VerifyResult,
) {
	index, err := it.sources.Scan(ctx, opts.ProjectDir, settings.ContentRoots, settings.Excludes)
	if err != nil {
		logger.Debugf("[verify] Source scan failed, skipping runner check: %v", err)
		return
	}

	for _, f := range index.Files {
		if !f.UsesParameterizedRunner {
			continue
		}
		result.ManualFixes = append(result.ManualFixes, entities.ManualFix{
			Category: entities.FixParameterizedRunner,
			Path:     f.Path,
			Detail:   fmt.Sprintf("%s uses a parameterized runner; review its generated test rule", f.FQCN()),
		})
	}
}

// tailLines keeps the last n non-empty lines of engine output.
func tailLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
