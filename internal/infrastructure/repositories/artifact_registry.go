package repositories

import (
	"fmt"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// ArtifactFactory is a constructor that creates an ArtifactRepository from
// its settings entry.
type ArtifactFactory func(config entities.RepositoryConfig) domainRepos.ArtifactRepository

// ArtifactRegistry manages the configured remote artifact repositories.
type ArtifactRegistry struct {
	factory      ArtifactFactory
	repositories map[string]domainRepos.ArtifactRepository
}

// NewArtifactRegistry creates an empty registry backed by the given factory.
func NewArtifactRegistry(factory ArtifactFactory) *ArtifactRegistry {
	return &ArtifactRegistry{
		factory:      factory,
		repositories: make(map[string]domainRepos.ArtifactRepository),
	}
}

// Configure instantiates one repository per settings entry, replacing any
// previous configuration.
func (r *ArtifactRegistry) Configure(configs []entities.RepositoryConfig) {
	r.repositories = make(map[string]domainRepos.ArtifactRepository, len(configs))
	for _, cfg := range configs {
		r.repositories[cfg.ID] = r.factory(cfg)
	}
}

// Get returns the repository with the given id.
func (r *ArtifactRegistry) Get(id string) (domainRepos.ArtifactRepository, error) {
	repo, ok := r.repositories[id]
	if !ok {
		return nil, fmt.Errorf("unknown artifact repository: %q", id)
	}
	return repo, nil
}

// All returns every configured repository.
func (r *ArtifactRegistry) All() []domainRepos.ArtifactRepository {
	result := make([]domainRepos.ArtifactRepository, 0, len(r.repositories))
	for _, repo := range r.repositories {
		result = append(result, repo)
	}
	return result
}

// Names returns the list of configured repository ids.
func (r *ArtifactRegistry) Names() []string {
	names := make([]string, 0, len(r.repositories))
	for name := range r.repositories {
		names = append(names, name)
	}
	return names
}
