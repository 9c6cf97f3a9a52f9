package controllers

import (
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// projectDirFromArgs returns the project directory argument, defaulting to
// the current directory.
func projectDirFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadSettings resolves the configuration for a run: the --config flag, an
// auto-detected config file, or the built-in defaults named after the
// project directory.
func loadSettings(cmd *cobra.Command, projectDir string) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			abs, absErr := filepath.Abs(projectDir)
			if absErr != nil {
				abs = projectDir
			}
			workspace := filepath.Base(abs)
			logger.Infof("No config file found, using defaults (workspace %q)", workspace)
			return entities.DefaultSettings(workspace), nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}
