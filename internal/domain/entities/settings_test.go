//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

func TestNewSettings(t *testing.T) {
	t.Run("should load a config file and apply defaults", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "bazelize.yaml")
		content := `
workspace: acme_service
repositories:
  - id: central
    url: https://repo.maven.apache.org/maven2
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme_service", settings.Workspace)
		assert.Equal(t, []string{"src/main/java", "src/test/java"}, settings.ContentRoots)
		assert.Equal(t, "bazel", settings.Toolchain.Binary)
		assert.Equal(t, "6.0.0", settings.Toolchain.MinimumVersion)
		assert.Equal(t, "third_party", settings.Output.ThirdPartyDir)
		assert.Equal(t, "bazel-migration", settings.Git.BranchPrefix)
	})

	t.Run("should expand environment variables in repository tokens", func(t *testing.T) {
		// given
		t.Setenv("NEXUS_TOKEN", "secret-token")
		path := filepath.Join(t.TempDir(), "bazelize.yaml")
		content := `
workspace: acme_service
repositories:
  - id: nexus
    url: https://nexus.acme.internal/repository/maven
    token: ${NEXUS_TOKEN}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "secret-token", settings.Repositories[0].Token)
	})

	t.Run("should fail without a workspace name", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "bazelize.yaml")
		content := `
repositories:
  - id: central
    url: https://repo.maven.apache.org/maven2
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		_, err := entities.NewSettings(path)

		// then
		require.ErrorContains(t, err, "workspace name is required")
	})

	t.Run("should fail without repositories", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "bazelize.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workspace: acme\n"), 0o644))

		// when
		_, err := entities.NewSettings(path)

		// then
		require.ErrorContains(t, err, "at least one artifact repository")
	})
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should fall back to Maven Central", func(t *testing.T) {
		// when
		settings := entities.DefaultSettings("acme_service")

		// then
		require.Len(t, settings.Repositories, 1)
		assert.Equal(t, "central", settings.Repositories[0].ID)
		assert.Equal(t, "acme_service", settings.Workspace)
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("should read the token from a file when the value is a path", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))

		// when
		token := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-token", token)
	})

	t.Run("should keep a plain token as-is", func(t *testing.T) {
		// when
		token := entities.ResolveToken("inline-token")

		// then
		assert.Equal(t, "inline-token", token)
	})
}
