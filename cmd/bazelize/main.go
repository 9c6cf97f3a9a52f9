package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal"
	"github.com/rios0rios0/bazelize/internal/infrastructure/controllers"
)

func buildRootCommand(migrateController *controllers.MigrateController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "bazelize [path]",
		Short: "Maven-to-Bazel build migration engine",
		Long: `Migrate a Maven-built Java project to Bazel: read the pom.xml
module tree, pin every external dependency to a concrete version,
generate one BUILD.bazel per Java package, fill in the deps lists
from the sources' imports, and verify the result with Bazel itself.

Usage modes:
  bazelize .              Migrate the current project end to end
  bazelize /path/to/repo  Migrate a specific project
  bazelize scan .         Run a single migration step (scan, deps,
                          init, fix, verify)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			migrateController.Execute(command, args)
			return nil
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be generated without writing files")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	// The bare "bazelize [path]" form runs the migrate pipeline, so the
	// migrate flags apply to the root command too.
	migrateController.AddFlags(cmd)

	return cmd
}

// flagAdder lets controllers contribute subcommand-specific flags.
type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fa, ok := ctrl.(flagAdder); ok {
			fa.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Repository tokens are commonly kept in a local .env
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	// Inject controllers via DIG
	migrateController := injectMigrateController()
	cobraRoot := buildRootCommand(migrateController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'bazelize': %s", err)
	}
}
