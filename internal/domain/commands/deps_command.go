package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/bazelize/internal/infrastructure/repositories"
)

// PinFileName is the dependency-declaration file consumed by the workspace
// generator.
const PinFileName = "dependencies.yaml"

// Deps is the interface for the deps command (dependency pinning).
type Deps interface {
	Execute(ctx context.Context, settings *entities.Settings, opts DepsOptions) (*entities.PinFile, error)
}

// DepsOptions holds runtime options for dependency pinning.
type DepsOptions struct {
	ProjectDir string
	DryRun     bool
	Verbose    bool
}

// DepsCommand turns the project's Maven dependency set into the
// dependency-declaration file: every external coordinate pinned to a
// concrete version with its checksum and source repository.
type DepsCommand struct {
	projects         domainRepos.ProjectRepository
	artifactRegistry *infraRepos.ArtifactRegistry
}

// NewDepsCommand creates a new DepsCommand.
func NewDepsCommand(
	projects domainRepos.ProjectRepository,
	artifactRegistry *infraRepos.ArtifactRegistry,
) *DepsCommand {
	return &DepsCommand{projects: projects, artifactRegistry: artifactRegistry}
}

// Execute resolves and writes the pin file, returning the resulting model.
func (it *DepsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DepsOptions,
) (*entities.PinFile, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	project, err := it.projects.Load(ctx, opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load Maven project: %w", err)
	}

	it.artifactRegistry.Configure(settings.Repositories)

	pins := &entities.PinFile{}
	for _, dep := range project.ExternalDependencies() {
		pin, pinErr := it.resolvePin(ctx, dep)
		if pinErr != nil {
			logger.Warnf("[deps] Could not resolve %s: %v", dep.Coordinate.Key(), pinErr)
			continue
		}
		pins.Dependencies = append(pins.Dependencies, pin)
		logger.Debugf("[deps] Pinned %s@%s", pin.Coordinate, pin.Version)
	}

	logger.Infof("[deps] Pinned %d dependencies", len(pins.Dependencies))

	if opts.DryRun {
		logger.Infof("[deps] [DRY RUN] Would write %s", it.pinPath(settings, opts.ProjectDir))
		return pins, nil
	}

	path := it.pinPath(settings, opts.ProjectDir)
	if saveErr := pins.Save(path); saveErr != nil {
		return nil, saveErr
	}
	logger.Infof("[deps] Wrote %s", path)

	return pins, nil
}

// resolvePin fills in the version (from the pom, falling back to the
// newest release), checksum, and latest-version metadata for one
// dependency, trying each configured repository in turn.
func (it *DepsCommand) resolvePin(
	ctx context.Context,
	dep entities.MavenDependency,
) (entities.DependencyPin, error) {
	var lastErr error

	for _, repo := range it.artifactRegistry.All() {
		pin := entities.DependencyPin{
			Coordinate: dep.Coordinate.Key(),
			Version:    dep.Coordinate.Version,
			Repository: repo.ID(),
		}
		// Compile is the default; only the scopes that change rule
		// placement are worth recording.
		if dep.Scope != "" && dep.Scope != entities.ScopeCompile {
			pin.Scope = dep.Scope
		}

		latest, err := repo.LatestVersion(ctx, dep.Coordinate)
		if err != nil {
			lastErr = err
			continue
		}
		pin.Latest = latest

		if pin.Version == "" {
			// The pom left the version to dependencyManagement outside the
			// repo; pin the newest release instead of failing the run.
			pin.Version = latest
		}

		versioned := dep.Coordinate
		versioned.Version = pin.Version
		if sum, sumErr := repo.Checksum(ctx, versioned); sumErr == nil {
			pin.Sha256 = sum
		} else {
			logger.Debugf("[deps] No checksum for %s: %v", versioned, sumErr)
		}

		return pin, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no artifact repositories configured")
	}
	return entities.DependencyPin{}, lastErr
}

func (it *DepsCommand) pinPath(settings *entities.Settings, projectDir string) string {
	return filepath.Join(projectDir, settings.Output.ThirdPartyDir, PinFileName)
}
