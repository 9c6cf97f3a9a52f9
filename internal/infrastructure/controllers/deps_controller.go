package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// DepsController handles the "deps" subcommand (dependency pinning).
type DepsController struct {
	command commands.Deps
}

// NewDepsController creates a new DepsController.
func NewDepsController(command commands.Deps) *DepsController {
	return &DepsController{command: command}
}

// GetBind returns the Cobra command metadata for the deps controller.
func (it *DepsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deps [path]",
		Short: "Pin the project's Maven dependencies",
		Long: `Resolve every external Maven dependency against the configured
artifact repositories and write the dependency declaration file
(third_party/dependencies.yaml): one pinned version plus checksum
per coordinate.

Run this before "init" so the generated workspace can reference
pinned artifacts.`,
	}
}

// Execute runs the dependency pinning.
func (it *DepsController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	projectDir := projectDirFromArgs(args)

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if _, depsErr := it.command.Execute(ctx, settings, commands.DepsOptions{
		ProjectDir: projectDir,
		DryRun:     dryRun,
		Verbose:    verbose,
	}); depsErr != nil {
		logger.Errorf("Dependency pinning failed: %v", depsErr)
	}
}
