package bazel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

const rulesJvmExternalVersion = "6.2"

// WorkspaceWriter emits the workspace-level files of the migrated build:
// the workspace declaration, the artifact macro file generated from the
// dependency-declaration file, and the third-party alias package.
type WorkspaceWriter struct{}

// NewWorkspaceWriter creates a new WorkspaceWriter.
func NewWorkspaceWriter() *WorkspaceWriter {
	return &WorkspaceWriter{}
}

// WriteAll writes the workspace files under rootDir. It returns the
// project-relative paths written.
func (it *WorkspaceWriter) WriteAll(
	rootDir string,
	settings *entities.Settings,
	pins *entities.PinFile,
) ([]string, error) {
	files := map[string]string{
		"WORKSPACE.bazel": it.renderWorkspace(settings),
		filepath.Join(settings.Output.ThirdPartyDir, settings.Output.MacroFile): it.renderMacro(pins),
		filepath.Join(settings.Output.ThirdPartyDir, "BUILD.bazel"):             it.renderAliases(settings, pins),
		".bazelrc": renderBazelrc(),
	}

	written := make([]string, 0, len(files))
	for rel, content := range files {
		path := filepath.Join(rootDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", path, err)
		}
		written = append(written, filepath.ToSlash(rel))
	}
	sort.Strings(written)

	logger.Infof("[bazel] Wrote %d workspace file(s)", len(written))
	return written, nil
}

// renderWorkspace produces WORKSPACE.bazel: the workspace declaration plus
// the pinned external-repository setup consuming the artifact macro.
func (it *WorkspaceWriter) renderWorkspace(settings *entities.Settings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "workspace(name = %q)\n\n", settings.Workspace)
	b.WriteString(`load("@bazel_tools//tools/build_defs/repo:http.bzl", "http_archive")

http_archive(
    name = "rules_jvm_external",
    strip_prefix = "rules_jvm_external-` + rulesJvmExternalVersion + `",
    url = "https://github.com/bazelbuild/rules_jvm_external/releases/download/` +
		rulesJvmExternalVersion + `/rules_jvm_external-` + rulesJvmExternalVersion + `.tar.gz",
)

load("@rules_jvm_external//:defs.bzl", "maven_install")
`)

	macroPath := settings.Output.ThirdPartyDir + ":" + settings.Output.MacroFile
	fmt.Fprintf(&b, "load(\"//%s\", \"MAVEN_ARTIFACTS\")\n\n", macroPath)

	b.WriteString("maven_install(\n    artifacts = MAVEN_ARTIFACTS,\n    repositories = [\n")
	for _, repo := range settings.Repositories {
		fmt.Fprintf(&b, "        %q,\n", repo.URL)
	}
	b.WriteString("    ],\n)\n")
	return b.String()
}

// renderMacro produces the artifact list macro file from the pins.
func (it *WorkspaceWriter) renderMacro(pins *entities.PinFile) string {
	var b strings.Builder

	b.WriteString("\"\"\"Third-party artifact pins. Generated by bazelize; edit via ")
	b.WriteString("the dependency-declaration file.\"\"\"\n\nMAVEN_ARTIFACTS = [\n")

	coords := make([]string, 0, len(pins.Dependencies))
	for _, pin := range pins.Dependencies {
		coords = append(coords, pin.Coordinate+":"+pin.Version)
	}
	sort.Strings(coords)

	for _, c := range coords {
		fmt.Fprintf(&b, "    %q,\n", c)
	}
	b.WriteString("]\n")
	return b.String()
}

// renderAliases produces the third-party BUILD file: one alias per pin so
// generated rules depend on stable //third_party labels instead of the
// external repository's mangled names.
func (it *WorkspaceWriter) renderAliases(settings *entities.Settings, pins *entities.PinFile) string {
	file := &entities.BuildFile{
		Path: filepath.Join(settings.Output.ThirdPartyDir, "BUILD.bazel"),
	}

	seen := make(map[string]bool)
	for _, pin := range pins.Dependencies {
		coord, err := pin.Coord()
		if err != nil {
			continue
		}
		name := coord.AliasName()
		if seen[name] {
			// Alias collisions (same artifact id under two groups) keep
			// the repo-qualified name instead.
			name = coord.RepoName()
		}
		seen[name] = true

		file.Rules = append(file.Rules, &entities.BuildRule{
			Kind: "alias",
			Name: name,
			Attrs: []entities.Attr{
				entities.StringAttr("actual", coord.ExternalLabel()),
				entities.ListAttr("visibility", "//visibility:public"),
			},
		})
	}

	sort.Slice(file.Rules, func(i, j int) bool { return file.Rules[i].Name < file.Rules[j].Name })
	return file.Render()
}

func renderBazelrc() string {
	return strings.Join([]string{
		"build --java_language_version=11",
		"build --java_runtime_version=remotejdk_11",
		"test --test_output=errors",
		"",
	}, "\n")
}
