package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// MigrateController handles the "migrate" subcommand (the full pipeline).
type MigrateController struct {
	command commands.Migrate
}

// NewMigrateController creates a new MigrateController.
func NewMigrateController(command commands.Migrate) *MigrateController {
	return &MigrateController{command: command}
}

// GetBind returns the Cobra command metadata for the migrate controller.
func (it *MigrateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "migrate [path]",
		Short: "Run the full Maven-to-Bazel migration",
		Long: `Run the whole migration in one go: inventory the Maven project,
pin its dependencies, generate the workspace and build files, fill
in the deps lists, verify with the build engine, and commit the
result on a fresh migration branch.

Equivalent to running scan, deps, init, fix, and verify in order.`,
	}
}

// Execute runs the migration pipeline.
func (it *MigrateController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	skipVerify, _ := cmd.Flags().GetBool("skip-verify")
	noCommit, _ := cmd.Flags().GetBool("no-commit")
	projectDir := projectDirFromArgs(args)

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if _, migrateErr := it.command.Execute(ctx, settings, commands.MigrateOptions{
		ProjectDir: projectDir,
		DryRun:     dryRun,
		SkipVerify: skipVerify,
		NoCommit:   noCommit,
		Verbose:    verbose,
	}); migrateErr != nil {
		logger.Errorf("Migration failed: %v", migrateErr)
	}
}

// AddFlags adds the migrate-specific flags to the given Cobra command.
func (it *MigrateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-verify", false, "Skip the build engine verification step")
	cmd.Flags().Bool("no-commit", false, "Leave the generated files uncommitted")
}
