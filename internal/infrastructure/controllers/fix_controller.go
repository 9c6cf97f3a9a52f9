package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// FixController handles the "fix" subcommand (dependency inference).
type FixController struct {
	command commands.Fix
}

// NewFixController creates a new FixController.
func NewFixController(command commands.Fix) *FixController {
	return &FixController{command: command}
}

// GetBind returns the Cobra command metadata for the fix controller.
func (it *FixController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fix [path]",
		Short: "Fill in deps lists from Java imports",
		Long: `Resolve the imports of every Java source file against the
project's own packages and the pinned third-party coordinates, and
add the missing entries to the deps lists of the generated build
files. Nothing is ever removed from a deps list.

Imports that match neither side are reported for manual review.`,
	}
}

// Execute runs the dependency inference.
func (it *FixController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	projectDir := projectDirFromArgs(args)

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	result, fixErr := it.command.Execute(ctx, settings, commands.FixOptions{
		ProjectDir: projectDir,
		DryRun:     dryRun,
		Verbose:    verbose,
	})
	if fixErr != nil {
		logger.Errorf("Dependency inference failed: %v", fixErr)
		return
	}

	for _, f := range result.ManualFixes {
		logger.Warnf("[%s] %s: %s", f.Category, f.Path, f.Detail)
	}
}
