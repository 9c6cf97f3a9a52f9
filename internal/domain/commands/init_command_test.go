//go:build unit

package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
	infraRepos "github.com/rios0rios0/bazelize/internal/infrastructure/repositories"
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/bazel"
	doubles "github.com/rios0rios0/bazelize/test/infrastructure/repositorydoubles"
)

func newRuleRegistry() *infraRepos.RuleRegistry {
	registry := infraRepos.NewRuleRegistry()
	registry.Register(bazel.NewLibraryGenerator())
	registry.Register(bazel.NewTestGenerator())
	registry.Register(bazel.NewBinaryGenerator())
	return registry
}

func indexWithPackage(dir, pkg string, main, test []*entities.JavaSourceFile) *entities.SourceIndex {
	return &entities.SourceIndex{
		Packages: map[string]*entities.PackageSources{
			pkg: {Package: pkg, Dir: dir, MainFiles: main, TestFiles: test},
		},
		ClassOwner: map[string]string{},
	}
}

func TestInitCommandExecute(t *testing.T) {
	t.Run("should write workspace files and a build file per package", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		pins := &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.google.guava:guava", Version: "31.1-jre"},
			},
		}
		require.NoError(t, pins.Save(
			filepath.Join(projectDir, "third_party", commands.PinFileName)))

		projects := &doubles.SpyProjectRepository{DetectResult: true}
		sources := &doubles.SpySourceRepository{
			Index: indexWithPackage(
				"src/main/java/com/acme/util", "com.acme.util",
				[]*entities.JavaSourceFile{{Class: "Strings", Package: "com.acme.util"}},
				nil,
			),
		}
		buildFiles := &doubles.SpyBuildFileRepository{}

		cmd := commands.NewInitCommand(
			projects, sources, buildFiles, newRuleRegistry(), bazel.NewWorkspaceWriter())

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.InitOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		assert.Contains(t, result.WrittenFiles, "WORKSPACE.bazel")
		assert.Contains(t, result.WrittenFiles, ".bazelrc")
		assert.Contains(t, result.WrittenFiles, "third_party/maven_deps.bzl")
		assert.Contains(t, result.WrittenFiles, "src/main/java/com/acme/util/BUILD.bazel")

		saved, ok := buildFiles.SavedFile(
			filepath.Join(projectDir, "src/main/java/com/acme/util", "BUILD.bazel"))
		require.True(t, ok)
		rule, ok := saved.Rule("util")
		require.True(t, ok)
		assert.Equal(t, "java_library", rule.Kind)
	})

	t.Run("should keep existing rules when merging", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		buildPath := filepath.Join(projectDir, "src/main/java/com/acme/util", "BUILD.bazel")

		handEdited := &entities.BuildFile{
			Path: buildPath,
			Rules: []*entities.BuildRule{{
				Kind: "java_library",
				Name: "util",
				Attrs: []entities.Attr{
					entities.ListAttr("srcs", "Strings.java"),
				},
			}},
		}

		projects := &doubles.SpyProjectRepository{DetectResult: true}
		sources := &doubles.SpySourceRepository{
			Index: indexWithPackage(
				"src/main/java/com/acme/util", "com.acme.util",
				[]*entities.JavaSourceFile{{Class: "Strings", Package: "com.acme.util"}},
				nil,
			),
		}
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{buildPath: handEdited},
		}

		cmd := commands.NewInitCommand(
			projects, sources, buildFiles, newRuleRegistry(), bazel.NewWorkspaceWriter())

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.InitOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, result.SkippedExisting)

		// the hand-edited rule body must survive
		rule, ok := handEdited.Rule("util")
		require.True(t, ok)
		srcs, ok := rule.Attr("srcs")
		require.True(t, ok)
		assert.Equal(t, []string{"Strings.java"}, srcs.List)
	})

	t.Run("should fail when the directory is not a Maven project", func(t *testing.T) {
		// given
		projects := &doubles.SpyProjectRepository{DetectResult: false}
		cmd := commands.NewInitCommand(
			projects, &doubles.SpySourceRepository{}, &doubles.SpyBuildFileRepository{},
			newRuleRegistry(), bazel.NewWorkspaceWriter())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.InitOptions{ProjectDir: t.TempDir()})

		// then
		require.ErrorContains(t, err, "not a Maven project")
	})

	t.Run("should wire each module's tests to its own resources", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		projects := &doubles.SpyProjectRepository{DetectResult: true}
		sources := &doubles.SpySourceRepository{
			Index: &entities.SourceIndex{
				Packages: map[string]*entities.PackageSources{
					"com.acme.app": {
						Package: "com.acme.app", Dir: "src/test/java/com/acme/app",
						TestFiles: []*entities.JavaSourceFile{{
							Class: "AppTest", Package: "com.acme.app", IsTest: true,
						}},
					},
					"com.acme.core": {
						Package: "com.acme.core", Dir: "core/src/test/java/com/acme/core",
						TestFiles: []*entities.JavaSourceFile{{
							Class: "CoreTest", Package: "com.acme.core", IsTest: true,
						}},
					},
				},
				ClassOwner:    map[string]string{},
				ResourceRoots: []string{"src/test/resources", "core/src/test/resources"},
			},
		}
		buildFiles := &doubles.SpyBuildFileRepository{}

		cmd := commands.NewInitCommand(
			projects, sources, buildFiles, newRuleRegistry(), bazel.NewWorkspaceWriter())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.InitOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)

		appFile, ok := buildFiles.SavedFile(
			filepath.Join(projectDir, "src/test/java/com/acme/app", "BUILD.bazel"))
		require.True(t, ok)
		appLib, ok := appFile.Rule("app_tests")
		require.True(t, ok)
		appDeps, ok := appLib.Attr("runtime_deps")
		require.True(t, ok)
		assert.Equal(t, []string{"//src/test/resources:resources"}, appDeps.List)

		coreFile, ok := buildFiles.SavedFile(
			filepath.Join(projectDir, "core/src/test/java/com/acme/core", "BUILD.bazel"))
		require.True(t, ok)
		coreLib, ok := coreFile.Rule("core_tests")
		require.True(t, ok)
		coreDeps, ok := coreLib.Attr("runtime_deps")
		require.True(t, ok)
		assert.Equal(t, []string{"//core/src/test/resources:resources"}, coreDeps.List)
	})

	t.Run("should generate per-class test rules", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		projects := &doubles.SpyProjectRepository{DetectResult: true}
		sources := &doubles.SpySourceRepository{
			Index: indexWithPackage(
				"src/test/java/com/acme/util", "com.acme.util",
				nil,
				[]*entities.JavaSourceFile{{
					Class: "StringsTest", Package: "com.acme.util", IsTest: true,
				}},
			),
		}
		buildFiles := &doubles.SpyBuildFileRepository{}

		cmd := commands.NewInitCommand(
			projects, sources, buildFiles, newRuleRegistry(), bazel.NewWorkspaceWriter())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.InitOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		saved, ok := buildFiles.SavedFile(
			filepath.Join(projectDir, "src/test/java/com/acme/util", "BUILD.bazel"))
		require.True(t, ok)

		testRule, ok := saved.Rule("StringsTest")
		require.True(t, ok)
		assert.Equal(t, "java_test", testRule.Kind)
		testClass, ok := testRule.Attr("test_class")
		require.True(t, ok)
		assert.Equal(t, "com.acme.util.StringsTest", testClass.Str)
	})
}
