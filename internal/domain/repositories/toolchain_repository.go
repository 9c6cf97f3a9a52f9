package repositories

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// ToolchainRepository drives the external build engine.
type ToolchainRepository interface {
	// Version returns the engine's version string, or an error when the
	// binary is missing or below the configured minimum.
	Version(ctx context.Context) (string, error)

	// Build runs the engine's build command for the given targets inside
	// workspaceDir. A failed build returns a ToolResult with the captured
	// output and Succeeded=false, not an error; errors are reserved for
	// invocation problems.
	Build(ctx context.Context, workspaceDir string, targets ...string) (*entities.ToolResult, error)

	// Test runs the engine's test command, with the same result contract
	// as Build.
	Test(ctx context.Context, workspaceDir string, targets ...string) (*entities.ToolResult, error)
}
