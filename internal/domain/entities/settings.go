package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration for bazelize.
type Settings struct {
	// Workspace is the name written into the generated workspace file.
	Workspace    string             `yaml:"workspace"`
	ContentRoots []string           `yaml:"content_roots"`
	Excludes     []string           `yaml:"excludes"`
	Repositories []RepositoryConfig `yaml:"repositories"`
	Toolchain    ToolchainConfig    `yaml:"toolchain"`
	Output       OutputConfig       `yaml:"output"`
	Git          GitConfig          `yaml:"git"`
}

// RepositoryConfig describes one remote artifact repository.
type RepositoryConfig struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// ToolchainConfig holds build engine invocation settings.
type ToolchainConfig struct {
	Binary         string   `yaml:"binary"`
	MinimumVersion string   `yaml:"minimum_version"`
	StartupArgs    []string `yaml:"startup_args"`
}

// OutputConfig controls where generated files land.
type OutputConfig struct {
	ThirdPartyDir string `yaml:"third_party_dir"`
	MacroFile     string `yaml:"macro_file"`
}

// GitConfig holds migration branch and commit settings.
type GitConfig struct {
	BranchPrefix string `yaml:"branch_prefix"`
	AuthorName   string `yaml:"author_name"`
	AuthorEmail  string `yaml:"author_email"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving token file paths, and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range settings.Repositories {
		settings.Repositories[i].Token = ResolveToken(settings.Repositories[i].Token)
	}

	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// DefaultSettings returns a ready-to-use configuration for projects without
// a config file: the conventional Maven source layout and Maven Central.
func DefaultSettings(workspace string) *Settings {
	settings := &Settings{
		Workspace: workspace,
		Repositories: []RepositoryConfig{
			{ID: "central", URL: "https://repo.maven.apache.org/maven2"},
		},
	}
	settings.applyDefaults()
	return settings
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".bazelize.yaml",
		".bazelize.yml",
		"bazelize.yaml",
		"bazelize.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func (s *Settings) applyDefaults() {
	if len(s.ContentRoots) == 0 {
		s.ContentRoots = []string{"src/main/java", "src/test/java"}
	}
	if s.Toolchain.Binary == "" {
		s.Toolchain.Binary = "bazel"
	}
	if s.Toolchain.MinimumVersion == "" {
		s.Toolchain.MinimumVersion = "6.0.0"
	}
	if s.Output.ThirdPartyDir == "" {
		s.Output.ThirdPartyDir = "third_party"
	}
	if s.Output.MacroFile == "" {
		s.Output.MacroFile = "maven_deps.bzl"
	}
	if s.Git.BranchPrefix == "" {
		s.Git.BranchPrefix = "bazel-migration"
	}
	if s.Git.AuthorName == "" {
		s.Git.AuthorName = "bazelize"
	}
	if s.Git.AuthorEmail == "" {
		s.Git.AuthorEmail = "bazelize@localhost"
	}
}

// validate checks for required configuration values.
func (s *Settings) validate() error {
	if s.Workspace == "" {
		return errors.New("workspace name is required")
	}

	if len(s.Repositories) == 0 {
		return errors.New("at least one artifact repository must be configured")
	}

	for i, r := range s.Repositories {
		if r.ID == "" {
			return fmt.Errorf("repositories[%d].id is required", i)
		}
		if r.URL == "" {
			return fmt.Errorf("repositories[%d].url is required", i)
		}
	}

	return nil
}
