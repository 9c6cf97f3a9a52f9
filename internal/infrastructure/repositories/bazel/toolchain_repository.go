package bazel

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// ExecToolchainRepository drives the build engine through its command-line
// interface. The engine's execution model is entirely its own; this layer
// only invokes and captures.
type ExecToolchainRepository struct {
	config entities.ToolchainConfig
}

var _ domainRepos.ToolchainRepository = (*ExecToolchainRepository)(nil)

// NewToolchainRepository creates a toolchain repository for the configured
// binary.
func NewToolchainRepository(config entities.ToolchainConfig) *ExecToolchainRepository {
	return &ExecToolchainRepository{config: config}
}

// Version runs `<binary> --version`, extracts the version number and gates
// it against the configured minimum.
func (it *ExecToolchainRepository) Version(ctx context.Context) (string, error) {
	binary, err := it.findBinary()
	if err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", binary, err)
	}

	match := versionPattern.FindString(string(out))
	if match == "" {
		return "", fmt.Errorf("could not parse version from %q", strings.TrimSpace(string(out)))
	}

	if it.config.MinimumVersion != "" &&
		semver.Compare("v"+match, "v"+it.config.MinimumVersion) < 0 {
		return "", fmt.Errorf(
			"build engine version %s is below the required minimum %s",
			match, it.config.MinimumVersion,
		)
	}

	return match, nil
}

// Build runs the engine's build command for the given targets.
func (it *ExecToolchainRepository) Build(
	ctx context.Context,
	workspaceDir string,
	targets ...string,
) (*entities.ToolResult, error) {
	return it.run(ctx, workspaceDir, "build", targets)
}

// Test runs the engine's test command for the given targets.
func (it *ExecToolchainRepository) Test(
	ctx context.Context,
	workspaceDir string,
	targets ...string,
) (*entities.ToolResult, error) {
	return it.run(ctx, workspaceDir, "test", targets)
}

func (it *ExecToolchainRepository) run(
	ctx context.Context,
	workspaceDir, command string,
	targets []string,
) (*entities.ToolResult, error) {
	binary, err := it.findBinary()
	if err != nil {
		return nil, err
	}

	args := append([]string(nil), it.config.StartupArgs...)
	args = append(args, command)
	args = append(args, targets...)

	logger.Debugf("[bazel] Running %s %s in %s", binary, strings.Join(args, " "), workspaceDir)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = workspaceDir

	output, runErr := cmd.CombinedOutput()
	result := &entities.ToolResult{
		Succeeded: runErr == nil,
		Output:    string(output),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The binary never ran; that is an invocation problem, not a
			// build failure.
			return nil, fmt.Errorf("%s %s: %w", binary, command, runErr)
		}
	}
	return result, nil
}

// findBinary resolves the configured binary on PATH.
func (it *ExecToolchainRepository) findBinary() (string, error) {
	path, err := exec.LookPath(it.config.Binary)
	if err != nil {
		return "", fmt.Errorf("build engine binary %q not found: %w", it.config.Binary, err)
	}
	return path, nil
}
