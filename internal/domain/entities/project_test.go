//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

func TestMavenProjectExternalDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should skip inter-module dependencies", func(t *testing.T) {
		// given
		project := &entities.MavenProject{
			Modules: []*entities.MavenModule{
				{
					GroupID: "com.acme", ArtifactID: "core",
					Dependencies: []entities.MavenDependency{
						{Coordinate: entities.Coordinate{GroupID: "com.acme", ArtifactID: "api"}},
						{Coordinate: entities.Coordinate{GroupID: "com.google.guava", ArtifactID: "guava", Version: "31.1-jre"}},
					},
				},
				{GroupID: "com.acme", ArtifactID: "api"},
			},
		}

		// when
		deps := project.ExternalDependencies()

		// then
		require.Len(t, deps, 1)
		assert.Equal(t, "com.google.guava:guava", deps[0].Coordinate.Key())
	})

	t.Run("should deduplicate across modules keeping the first version", func(t *testing.T) {
		// given
		project := &entities.MavenProject{
			Modules: []*entities.MavenModule{
				{
					GroupID: "com.acme", ArtifactID: "core",
					Dependencies: []entities.MavenDependency{
						{Coordinate: entities.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2"}, Scope: entities.ScopeTest},
					},
				},
				{
					GroupID: "com.acme", ArtifactID: "web",
					Dependencies: []entities.MavenDependency{
						{Coordinate: entities.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.12"}, Scope: entities.ScopeTest},
					},
				},
			},
		}

		// when
		deps := project.ExternalDependencies()

		// then
		require.Len(t, deps, 1)
		assert.Equal(t, "4.13.2", deps[0].Coordinate.Version)
	})

	t.Run("should skip optional dependencies", func(t *testing.T) {
		// given
		project := &entities.MavenProject{
			Modules: []*entities.MavenModule{
				{
					GroupID: "com.acme", ArtifactID: "core",
					Dependencies: []entities.MavenDependency{
						{Coordinate: entities.Coordinate{GroupID: "org.acme", ArtifactID: "extra"}, Optional: true},
					},
				},
			},
		}

		// when
		deps := project.ExternalDependencies()

		// then
		assert.Empty(t, deps)
	})
}
