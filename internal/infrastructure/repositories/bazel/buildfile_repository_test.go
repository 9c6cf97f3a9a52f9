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

func TestDiskBuildFileRepositoryParse(t *testing.T) {
	t.Parallel()

	t.Run("should parse the generated rule subset", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "BUILD.bazel")
		content := `load("@rules_java//java:defs.bzl", "java_library", "java_test")

java_library(
    name = "util",
    srcs = glob([
        "*.java",
    ]),
    testonly = True,
    deps = [
        "//third_party:guava",
    ],
)

java_test(
    name = "StringsTest",
    test_class = "com.acme.util.StringsTest",
    runtime_deps = [
        ":util_tests",
    ],
)
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		file, err := bazel.NewBuildFileRepository().Parse(path)

		// then
		require.NoError(t, err)
		require.Len(t, file.Loads, 1)
		assert.Equal(t, []string{"java_library", "java_test"}, file.Loads[0].Symbols)
		require.Len(t, file.Rules, 2)

		lib, ok := file.Rule("util")
		require.True(t, ok)
		assert.Equal(t, "java_library", lib.Kind)
		assert.Equal(t, []string{"//third_party:guava"}, lib.Deps())

		srcs, ok := lib.Attr("srcs")
		require.True(t, ok)
		assert.Equal(t, entities.AttrGlob, srcs.Kind)
		assert.Equal(t, []string{"*.java"}, srcs.List)

		testonly, ok := lib.Attr("testonly")
		require.True(t, ok)
		assert.True(t, testonly.Bool)

		test, ok := file.Rule("StringsTest")
		require.True(t, ok)
		testClass, ok := test.Attr("test_class")
		require.True(t, ok)
		assert.Equal(t, "com.acme.util.StringsTest", testClass.Str)
	})

	t.Run("should round-trip its own rendering", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "BUILD.bazel")
		original := &entities.BuildFile{Path: path}
		original.EnsureLoad("@rules_java//java:defs.bzl", "java_library")
		original.Rules = append(original.Rules, &entities.BuildRule{
			Kind: "java_library",
			Name: "core",
			Attrs: []entities.Attr{
				entities.GlobAttr("srcs", "*.java"),
				entities.ListAttr("visibility", "//visibility:public"),
				entities.ListAttr("deps", "//third_party:slf4j_api"),
			},
		})

		repo := bazel.NewBuildFileRepository()
		require.NoError(t, repo.Save(original))

		// when
		parsed, err := repo.Parse(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, original.Render(), parsed.Render())
	})

	t.Run("should reject files outside the declarative subset", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "BUILD.bazel")
		content := `x = 1

java_library(name = "util")
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		_, err := bazel.NewBuildFileRepository().Parse(path)

		// then
		require.Error(t, err)
	})

	t.Run("should reject rules without a name", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "BUILD.bazel")
		require.NoError(t, os.WriteFile(path, []byte("java_library(srcs = [])\n"), 0o644))

		// when
		_, err := bazel.NewBuildFileRepository().Parse(path)

		// then
		require.ErrorContains(t, err, "no name attribute")
	})
}

func TestDiskBuildFileRepositoryPreview(t *testing.T) {
	t.Parallel()

	t.Run("should return an empty diff for identical content", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "BUILD.bazel")
		file := &entities.BuildFile{
			Path: path,
			Rules: []*entities.BuildRule{{Kind: "java_library", Name: "util"}},
		}
		repo := bazel.NewBuildFileRepository()
		require.NoError(t, repo.Save(file))

		// when
		diff, err := repo.Preview(file)

		// then
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("should show a diff for a new file", func(t *testing.T) {
		// given
		file := &entities.BuildFile{
			Path:  filepath.Join(t.TempDir(), "BUILD.bazel"),
			Rules: []*entities.BuildRule{{Kind: "java_library", Name: "util"}},
		}

		// when
		diff, err := bazel.NewBuildFileRepository().Preview(file)

		// then
		require.NoError(t, err)
		assert.Contains(t, diff, "java_library")
	})
}
