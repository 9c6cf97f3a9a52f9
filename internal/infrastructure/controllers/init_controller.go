package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// InitController handles the "init" subcommand (skeleton generation).
type InitController struct {
	command commands.Init
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Init) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init [path]",
		Short: "Generate the workspace and skeleton build files",
		Long: `Write the Bazel workspace files (WORKSPACE.bazel, third_party
macros, .bazelrc) and one skeleton BUILD.bazel per Java package:
library rules with source globs and per-class test rules.

Existing build files are merged rule-by-rule; hand-edited rules are
never overwritten.`,
	}
}

// Execute runs the skeleton generation.
func (it *InitController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	projectDir := projectDirFromArgs(args)

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if _, initErr := it.command.Execute(ctx, settings, commands.InitOptions{
		ProjectDir: projectDir,
		DryRun:     dryRun,
		Verbose:    verbose,
	}); initErr != nil {
		logger.Errorf("Generation failed: %v", initErr)
	}
}
