//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpyToolchainRepository implements repositories.ToolchainRepository as a configurable spy.
type SpyToolchainRepository struct {
	// --- Version ---
	VersionResult string
	VersionErr    error

	// --- Build ---
	BuildResult *entities.ToolResult
	BuildErr    error
	// spy: target lists received
	BuildTargets [][]string

	// --- Test ---
	TestResult  *entities.ToolResult
	TestErr     error
	TestTargets [][]string
}

var _ repositories.ToolchainRepository = (*SpyToolchainRepository)(nil)

func (t *SpyToolchainRepository) Version(_ context.Context) (string, error) {
	if t.VersionErr != nil {
		return "", t.VersionErr
	}
	if t.VersionResult != "" {
		return t.VersionResult, nil
	}
	return "7.0.0", nil
}

func (t *SpyToolchainRepository) Build(
	_ context.Context, _ string, targets ...string,
) (*entities.ToolResult, error) {
	t.BuildTargets = append(t.BuildTargets, targets)
	if t.BuildErr != nil {
		return nil, t.BuildErr
	}
	if t.BuildResult != nil {
		return t.BuildResult, nil
	}
	return &entities.ToolResult{Succeeded: true}, nil
}

func (t *SpyToolchainRepository) Test(
	_ context.Context, _ string, targets ...string,
) (*entities.ToolResult, error) {
	t.TestTargets = append(t.TestTargets, targets)
	if t.TestErr != nil {
		return nil, t.TestErr
	}
	if t.TestResult != nil {
		return t.TestResult, nil
	}
	return &entities.ToolResult{Succeeded: true}, nil
}
