package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// Scan is the interface for the scan command (project inventory).
type Scan interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ScanOptions) (*ScanResult, error)
}

// ScanOptions holds runtime options for a scan.
type ScanOptions struct {
	ProjectDir string
	Verbose    bool
}

// ScanResult is the combined inventory of the project's build declaration
// and sources.
type ScanResult struct {
	Project *entities.MavenProject
	Index   *entities.SourceIndex
}

// ScanCommand inventories a Maven project: module tree, declared
// dependencies, and the Java source index.
type ScanCommand struct {
	projects repositories.ProjectRepository
	sources  repositories.SourceRepository
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(
	projects repositories.ProjectRepository,
	sources repositories.SourceRepository,
) *ScanCommand {
	return &ScanCommand{projects: projects, sources: sources}
}

// Execute loads the module tree and scans the sources.
func (it *ScanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ScanOptions,
) (*ScanResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if !it.projects.Detect(opts.ProjectDir) {
		return nil, fmt.Errorf("no pom.xml found in %s — not a Maven project", opts.ProjectDir)
	}

	project, err := it.projects.Load(ctx, opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load Maven project: %w", err)
	}

	index, err := it.sources.Scan(ctx, opts.ProjectDir, settings.ContentRoots, settings.Excludes)
	if err != nil {
		return nil, err
	}

	external := project.ExternalDependencies()
	logger.Infof(
		"[scan] %d module(s), %d external dependencies, %d source file(s) in %d package(s)",
		len(project.Modules), len(external), len(index.Files), len(index.Packages),
	)

	for _, dep := range external {
		logger.Debugf("[scan]   %s (scope %s)", dep.Coordinate, dep.Scope)
	}

	return &ScanResult{Project: project, Index: index}, nil
}
