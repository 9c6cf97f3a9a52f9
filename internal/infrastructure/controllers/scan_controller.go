package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// ScanController handles the "scan" subcommand (project inventory).
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan [path]",
		Short: "Inventory a Maven project",
		Long: `Read the pom.xml module tree and the Java sources of a Maven
project and report what a migration would have to cover: modules,
external dependencies, packages, and test classes.

This command changes nothing; use it to size a migration before
running it.`,
	}
}

// Execute runs the project inventory.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	projectDir := projectDirFromArgs(args)

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if _, scanErr := it.command.Execute(ctx, settings, commands.ScanOptions{
		ProjectDir: projectDir,
		Verbose:    verbose,
	}); scanErr != nil {
		logger.Errorf("Scan failed: %v", scanErr)
	}
}
