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
	doubles "github.com/rios0rios0/bazelize/test/infrastructure/repositorydoubles"
)

func writePins(t *testing.T, projectDir string, pins *entities.PinFile) {
	t.Helper()
	require.NoError(t, pins.Save(
		filepath.Join(projectDir, "third_party", commands.PinFileName)))
}

func libraryBuildFile(path, name string) *entities.BuildFile {
	return &entities.BuildFile{
		Path: path,
		Rules: []*entities.BuildRule{{
			Kind: "java_library",
			Name: name,
			Attrs: []entities.Attr{
				entities.GlobAttr("srcs", "*.java"),
				entities.ListAttr("deps"),
			},
		}},
	}
}

func TestFixCommandExecute(t *testing.T) {
	t.Run("should add internal and third-party deps from imports", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		writePins(t, projectDir, &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.google.guava:guava", Version: "31.1-jre"},
			},
		})

		serviceFile := &entities.JavaSourceFile{
			Path:    "src/main/java/com/acme/service/Orders.java",
			Package: "com.acme.service",
			Class:   "Orders",
			Imports: []string{
				"java.util.List",
				"com.acme.util.Strings",
				"com.google.guava.base.Joiner",
			},
		}
		index := &entities.SourceIndex{
			Packages: map[string]*entities.PackageSources{
				"com.acme.service": {
					Package: "com.acme.service", Dir: "src/main/java/com/acme/service",
					MainFiles: []*entities.JavaSourceFile{serviceFile},
				},
				"com.acme.util": {
					Package: "com.acme.util", Dir: "src/main/java/com/acme/util",
					MainFiles: []*entities.JavaSourceFile{{Package: "com.acme.util", Class: "Strings"}},
				},
			},
			ClassOwner: map[string]string{
				"com.acme.util.Strings":  "com.acme.util",
				"com.acme.service.Orders": "com.acme.service",
			},
		}

		servicePath := filepath.Join(projectDir, "src/main/java/com/acme/service", "BUILD.bazel")
		utilPath := filepath.Join(projectDir, "src/main/java/com/acme/util", "BUILD.bazel")
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{
				servicePath: libraryBuildFile(servicePath, "service"),
				utilPath:    libraryBuildFile(utilPath, "util"),
			},
		}
		sources := &doubles.SpySourceRepository{Index: index}

		cmd := commands.NewFixCommand(sources, buildFiles)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"src/main/java/com/acme/service/BUILD.bazel"}, result.PatchedPaths)
		assert.Empty(t, result.ManualFixes)

		saved, ok := buildFiles.SavedFile(servicePath)
		require.True(t, ok)
		rule, ok := saved.Rule("service")
		require.True(t, ok)
		assert.Equal(t, []string{
			"//src/main/java/com/acme/util:util",
			"//third_party:guava",
		}, rule.Deps())
	})

	t.Run("should report imports that match nothing", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		writePins(t, projectDir, &entities.PinFile{})

		index := &entities.SourceIndex{
			Packages: map[string]*entities.PackageSources{
				"com.acme.service": {
					Package: "com.acme.service", Dir: "src/main/java/com/acme/service",
					MainFiles: []*entities.JavaSourceFile{{
						Path:    "src/main/java/com/acme/service/Orders.java",
						Package: "com.acme.service",
						Class:   "Orders",
						Imports: []string{"io.vanished.Thing"},
					}},
				},
			},
			ClassOwner: map[string]string{},
		}

		path := filepath.Join(projectDir, "src/main/java/com/acme/service", "BUILD.bazel")
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{
				path: libraryBuildFile(path, "service"),
			},
		}

		cmd := commands.NewFixCommand(&doubles.SpySourceRepository{Index: index}, buildFiles)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		require.Len(t, result.ManualFixes, 1)
		assert.Equal(t, entities.FixUnresolvedImport, result.ManualFixes[0].Category)
		assert.Contains(t, result.ManualFixes[0].Detail, "io.vanished.Thing")
	})

	t.Run("should wire test rules against the production library", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		writePins(t, projectDir, &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "junit:junit", Version: "4.13.2"},
			},
		})

		index := &entities.SourceIndex{
			Packages: map[string]*entities.PackageSources{
				"com.acme.util": {
					Package: "com.acme.util", Dir: "src/main/java/com/acme/util",
					MainFiles: []*entities.JavaSourceFile{{Package: "com.acme.util", Class: "Strings"}},
					TestFiles: []*entities.JavaSourceFile{{
						Package: "com.acme.util", Class: "StringsTest", IsTest: true,
						Imports: []string{"junit.framework.TestCase"},
					}},
				},
			},
			ClassOwner: map[string]string{"com.acme.util.Strings": "com.acme.util"},
		}

		path := filepath.Join(projectDir, "src/main/java/com/acme/util", "BUILD.bazel")
		file := libraryBuildFile(path, "util")
		file.Rules = append(file.Rules, &entities.BuildRule{
			Kind: "java_library",
			Name: "util_tests",
			Attrs: []entities.Attr{
				entities.GlobAttr("srcs", "*.java"),
				entities.ListAttr("deps"),
			},
		})
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{path: file},
		}

		cmd := commands.NewFixCommand(&doubles.SpySourceRepository{Index: index}, buildFiles)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		assert.Len(t, result.PatchedPaths, 1)

		rule, ok := file.Rule("util_tests")
		require.True(t, ok)
		assert.Contains(t, rule.Deps(), ":util")
		assert.Contains(t, rule.Deps(), "//third_party:junit")
	})

	t.Run("should map runtime-scoped pins to runtime_deps", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		writePins(t, projectDir, &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.google.guava:guava", Version: "31.1-jre"},
				{Coordinate: "org.postgresql:postgresql", Version: "42.7.3", Scope: entities.ScopeRuntime},
			},
		})

		index := &entities.SourceIndex{
			Packages: map[string]*entities.PackageSources{
				"com.acme.app": {
					Package: "com.acme.app", Dir: "src/main/java/com/acme/app",
					MainFiles: []*entities.JavaSourceFile{{
						Package: "com.acme.app", Class: "OrdersApplication",
						Imports: []string{
							"com.google.guava.base.Joiner",
							"org.postgresql.Driver",
						},
					}},
				},
			},
			ClassOwner: map[string]string{},
		}

		path := filepath.Join(projectDir, "src/main/java/com/acme/app", "BUILD.bazel")
		file := libraryBuildFile(path, "app")
		file.Rules = append(file.Rules, &entities.BuildRule{
			Kind: "java_binary",
			Name: "orders_application",
			Attrs: []entities.Attr{
				entities.StringAttr("main_class", "com.acme.app.OrdersApplication"),
				entities.ListAttr("runtime_deps", ":app"),
			},
		})
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{path: file},
		}

		cmd := commands.NewFixCommand(&doubles.SpySourceRepository{Index: index}, buildFiles)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: projectDir})

		// then
		require.NoError(t, err)
		assert.Len(t, result.PatchedPaths, 1)

		lib, ok := file.Rule("app")
		require.True(t, ok)
		assert.Equal(t, []string{"//third_party:guava"}, lib.Deps())
		assert.Equal(t, []string{"//third_party:postgresql"}, lib.RuntimeDeps())

		// a JDBC-style driver reaches the deployable even without imports
		binary, ok := file.Rule("orders_application")
		require.True(t, ok)
		assert.Equal(t, []string{"//third_party:postgresql", ":app"}, binary.RuntimeDeps())
	})

	t.Run("should fail without a dependency-declaration file", func(t *testing.T) {
		// given
		cmd := commands.NewFixCommand(
			&doubles.SpySourceRepository{}, &doubles.SpyBuildFileRepository{})

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: t.TempDir()})

		// then
		require.ErrorContains(t, err, "dependency pins are required")
	})

	t.Run("should not save files in dry-run mode", func(t *testing.T) {
		// given
		projectDir := t.TempDir()
		writePins(t, projectDir, &entities.PinFile{
			Dependencies: []entities.DependencyPin{
				{Coordinate: "com.google.guava:guava", Version: "31.1-jre"},
			},
		})

		index := &entities.SourceIndex{
			Packages: map[string]*entities.PackageSources{
				"com.acme.util": {
					Package: "com.acme.util", Dir: "src/main/java/com/acme/util",
					MainFiles: []*entities.JavaSourceFile{{
						Package: "com.acme.util", Class: "Strings",
						Imports: []string{"com.google.guava.base.Joiner"},
					}},
				},
			},
			ClassOwner: map[string]string{},
		}

		path := filepath.Join(projectDir, "src/main/java/com/acme/util", "BUILD.bazel")
		buildFiles := &doubles.SpyBuildFileRepository{
			ExistingFiles: map[string]*entities.BuildFile{
				path: libraryBuildFile(path, "util"),
			},
		}

		cmd := commands.NewFixCommand(&doubles.SpySourceRepository{Index: index}, buildFiles)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings("acme"),
			commands.FixOptions{ProjectDir: projectDir, DryRun: true})

		// then
		require.NoError(t, err)
		assert.Len(t, result.PatchedPaths, 1)
		assert.Empty(t, buildFiles.SavedFiles)
	})
}
