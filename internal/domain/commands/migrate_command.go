package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/segmentio/ksuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// Migrate is the interface for the migrate command (the full pipeline).
type Migrate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MigrateOptions) (*entities.MigrationReport, error)
}

// MigrateOptions holds runtime options for a full migration run.
type MigrateOptions struct {
	ProjectDir string
	DryRun     bool
	SkipVerify bool
	NoCommit   bool
	Verbose    bool
}

// MigrateCommand runs the whole migration end to end: inventory the Maven
// project, pin its dependencies, generate the workspace and build files,
// infer dependency edges, verify with the build engine, and commit the
// result on a fresh branch.
type MigrateCommand struct {
	scan   Scan
	deps   Deps
	init   Init
	fix    Fix
	verify Verify
	vcs    domainRepos.VCSRepository
}

// NewMigrateCommand creates a new MigrateCommand.
func NewMigrateCommand(
	scan Scan,
	deps Deps,
	init Init,
	fix Fix,
	verify Verify,
	vcs domainRepos.VCSRepository,
) *MigrateCommand {
	return &MigrateCommand{scan: scan, deps: deps, init: init, fix: fix, verify: verify, vcs: vcs}
}

// Execute runs the pipeline and assembles the migration report.
func (it *MigrateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MigrateOptions,
) (*entities.MigrationReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	report := &entities.MigrationReport{}

	scanned, err := it.scan.Execute(ctx, settings, ScanOptions{
		ProjectDir: opts.ProjectDir,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	report.ModulesMigrated = len(scanned.Project.Modules)

	pins, err := it.deps.Execute(ctx, settings, DepsOptions{
		ProjectDir: opts.ProjectDir,
		DryRun:     opts.DryRun,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	report.DependenciesPinned = len(pins.Dependencies)

	generated, err := it.init.Execute(ctx, settings, InitOptions{
		ProjectDir: opts.ProjectDir,
		DryRun:     opts.DryRun,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	report.BuildFilesWritten = len(generated.WrittenFiles)

	fixed, err := it.fix.Execute(ctx, settings, FixOptions{
		ProjectDir: opts.ProjectDir,
		DryRun:     opts.DryRun,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	for _, f := range fixed.ManualFixes {
		report.Add(f.Category, f.Path, f.Detail)
	}

	if opts.SkipVerify || opts.DryRun {
		logger.Info("[migrate] Skipping verification")
	} else {
		verified, verifyErr := it.verify.Execute(ctx, settings, VerifyOptions{
			ProjectDir: opts.ProjectDir,
			Verbose:    opts.Verbose,
		})
		if verifyErr != nil {
			return nil, verifyErr
		}
		report.BuildPassed = verified.BuildPassed
		report.TestsPassed = verified.TestsPassed
		for _, f := range verified.ManualFixes {
			report.Add(f.Category, f.Path, f.Detail)
		}
	}

	if err := it.commit(ctx, settings, opts, commitPaths(settings, generated, fixed), report); err != nil {
		return nil, err
	}

	logger.Infof("[migrate] Done\n%s", report.Summary())
	return report, nil
}

// commitPaths collects the project-relative paths the pipeline wrote: the
// pin file, the workspace files, and every generated or patched build file.
// Only these are staged, so unrelated worktree changes stay untouched.
func commitPaths(settings *entities.Settings, generated *InitResult, fixed *FixResult) []string {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	add(filepath.ToSlash(filepath.Join(settings.Output.ThirdPartyDir, PinFileName)))
	for _, p := range generated.WrittenFiles {
		add(p)
	}
	for _, p := range fixed.PatchedPaths {
		add(p)
	}

	sort.Strings(paths)
	return paths
}

// commit records the generated files on a fresh branch, unless committing
// was disabled or there is nothing to record.
func (it *MigrateCommand) commit(
	ctx context.Context,
	settings *entities.Settings,
	opts MigrateOptions,
	paths []string,
	report *entities.MigrationReport,
) error {
	if opts.NoCommit || opts.DryRun {
		logger.Info("[migrate] Skipping commit")
		return nil
	}
	if !it.vcs.IsRepository(opts.ProjectDir) {
		logger.Warn("[migrate] Not a git repository, skipping commit")
		return nil
	}
	if report.BuildFilesWritten == 0 {
		logger.Info("[migrate] Nothing generated, skipping commit")
		return nil
	}

	branch := fmt.Sprintf("%s/%s", settings.Git.BranchPrefix, ksuid.New().String())
	hash, err := it.vcs.CommitGenerated(ctx, opts.ProjectDir, domainRepos.CommitInput{
		Branch:      branch,
		Message:     "Add Bazel build files generated from the Maven project",
		AuthorName:  settings.Git.AuthorName,
		AuthorEmail: settings.Git.AuthorEmail,
		Paths:       paths,
	})
	if err != nil {
		return fmt.Errorf("failed to commit generated files: %w", err)
	}

	report.Branch = branch
	report.Commit = hash
	logger.Infof("[migrate] Committed %s on %s", hash, branch)
	return nil
}
