package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/bazel"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/central"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/gitlocal"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/javasrc"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/maven"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Concrete repositories bound to their domain interfaces
	if err := container.Provide(func() domainRepos.ProjectRepository {
		return maven.NewPomRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.SourceRepository {
		return javasrc.NewSourceRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.BuildFileRepository {
		return bazel.NewBuildFileRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.VCSRepository {
		return gitlocal.NewVCSRepository()
	}); err != nil {
		return err
	}

	// Artifact repository registry with the HTTP factory
	if err := container.Provide(func() *ArtifactRegistry {
		return NewArtifactRegistry(
			func(cfg entities.RepositoryConfig) domainRepos.ArtifactRepository {
				return central.NewArtifactRepository(cfg)
			},
		)
	}); err != nil {
		return err
	}

	// Rule generator registry with all generators
	if err := container.Provide(func() *RuleRegistry {
		reg := NewRuleRegistry()
		reg.Register(bazel.NewLibraryGenerator())
		reg.Register(bazel.NewTestGenerator())
		reg.Register(bazel.NewBinaryGenerator())
		return reg
	}); err != nil {
		return err
	}

	// Toolchain factory; the concrete instance needs settings, which the
	// controllers layer provides at execution time.
	if err := container.Provide(func() ToolchainFactory {
		return func(cfg entities.ToolchainConfig) domainRepos.ToolchainRepository {
			return bazel.NewToolchainRepository(cfg)
		}
	}); err != nil {
		return err
	}

	// Workspace writer
	if err := container.Provide(bazel.NewWorkspaceWriter); err != nil {
		return err
	}

	return nil
}

// ToolchainFactory creates a ToolchainRepository from toolchain settings.
type ToolchainFactory func(config entities.ToolchainConfig) domainRepos.ToolchainRepository
