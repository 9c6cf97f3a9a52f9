//go:build unit

package bazel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/bazel"
)

func TestWorkspaceWriterWriteAll(t *testing.T) {
	t.Parallel()

	t.Run("should write the workspace, macro, alias and rc files", func(t *testing.T) {
		// given
		rootDir := t.TempDir()
		settings := entities.DefaultSettings("acme_service")
		pins := &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.google.guava:guava", Version: "31.1-jre"},
				{Coordinate: "org.slf4j:slf4j-api", Version: "1.7.36"},
			},
		}

		// when
		written, err := bazel.NewWorkspaceWriter().WriteAll(rootDir, settings, pins)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			".bazelrc",
			"WORKSPACE.bazel",
			"third_party/BUILD.bazel",
			"third_party/maven_deps.bzl",
		}, written)

		workspace, readErr := os.ReadFile(filepath.Join(rootDir, "WORKSPACE.bazel"))
		require.NoError(t, readErr)
		assert.Contains(t, string(workspace), `workspace(name = "acme_service")`)
		assert.Contains(t, string(workspace), "rules_jvm_external")
		assert.Contains(t, string(workspace), "https://repo.maven.apache.org/maven2")

		macro, readErr := os.ReadFile(filepath.Join(rootDir, "third_party", "maven_deps.bzl"))
		require.NoError(t, readErr)
		assert.Contains(t, string(macro), `"com.google.guava:guava:31.1-jre",`)
		assert.Contains(t, string(macro), `"org.slf4j:slf4j-api:1.7.36",`)

		aliases, readErr := os.ReadFile(filepath.Join(rootDir, "third_party", "BUILD.bazel"))
		require.NoError(t, readErr)
		assert.Contains(t, string(aliases), `name = "guava"`)
		assert.Contains(t, string(aliases), `actual = "@maven//:com_google_guava_guava"`)
	})

	t.Run("should qualify alias collisions with the group", func(t *testing.T) {
		// given
		rootDir := t.TempDir()
		settings := entities.DefaultSettings("acme_service")
		pins := &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.acme:client", Version: "1.0"},
				{Coordinate: "org.other:client", Version: "2.0"},
			},
		}

		// when
		_, err := bazel.NewWorkspaceWriter().WriteAll(rootDir, settings, pins)

		// then
		require.NoError(t, err)
		aliases, readErr := os.ReadFile(filepath.Join(rootDir, "third_party", "BUILD.bazel"))
		require.NoError(t, readErr)
		assert.Contains(t, string(aliases), `name = "client"`)
		assert.Contains(t, string(aliases), `name = "org_other_client"`)
	})
}
